package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vinoteca"
	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/pkg/errors"
)

const dirtyCatalog = `
wineries:
  - id: b1
    name: Sur
  - id: b1
    name: Sur Duplicada
varietals:
  - id: c1
    name: Malbec
wines:
  - id: v1
    name: Tinto
    winery: b1
    varietals: [c1, c9]
  - id: v2
    name: Perdido
    winery: b7
`

func embeddedApp(t *testing.T, format string) *application.Mock {
	t.Helper()
	v, err := vinoteca.Initialize(context.Background(), "")
	require.NoError(t, err)
	return &application.Mock{
		VinotecaFunc: func(context.Context) (vinoteca.Vinoteca, error) { return v, nil },
		Format:       format,
	}
}

func execute(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateEmbeddedCatalog(t *testing.T) {
	out, err := execute(t, embeddedApp(t, "table"), "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}

func TestValidateReportsIssues(t *testing.T) {
	path := writeFile(t, "dirty.yaml", dirtyCatalog)

	out, err := execute(t, embeddedApp(t, "json"), path)
	require.NoError(t, err)

	var result Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, path, result.Source)
	assert.Len(t, result.Issues, 3)
	assert.Equal(t, 1, result.Counts["duplicate_id"])
	assert.Equal(t, 1, result.Counts["dangling_winery"])
	assert.Equal(t, 1, result.Counts["dangling_varietal"])

	out, err = execute(t, embeddedApp(t, "table"), path)
	require.NoError(t, err)
	assert.Contains(t, out, "3 issues found")
	assert.Contains(t, out, "b7")
}

func TestValidateStrict(t *testing.T) {
	path := writeFile(t, "dirty.yaml", dirtyCatalog)

	_, err := execute(t, embeddedApp(t, "json"), "--strict", path)
	assert.True(t, errors.IsValidationError(err))
}

func TestValidateUnreadableFile(t *testing.T) {
	_, err := execute(t, embeddedApp(t, "json"), filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.IsDataLoad(err))

	path := writeFile(t, "broken.json", `{"wines": [`)
	_, err = execute(t, embeddedApp(t, "json"), path)
	assert.True(t, errors.IsDataLoad(err))
}
