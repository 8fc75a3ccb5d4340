package completion

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "vinoteca"}
	root.AddCommand(NewCommand())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"completion"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCompletionScript(t *testing.T) {
	out, err := execute(t, "fish")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -c vinoteca")

	_, err = execute(t, "tcsh")
	assert.Error(t, err)
	_, err = execute(t)
	assert.Error(t, err)
}

func TestCompletionInstallAll(t *testing.T) {
	prefix := t.TempDir()
	t.Setenv("HOMEBREW_PREFIX", prefix)

	_, err := execute(t, "install")
	require.NoError(t, err)
	for _, path := range []string{
		filepath.Join(prefix, "etc", "bash_completion.d", "vinoteca"),
		filepath.Join(prefix, "share", "zsh", "site-functions", "_vinoteca"),
		filepath.Join(prefix, "share", "fish", "vendor_completions.d", "vinoteca.fish"),
	} {
		assert.FileExists(t, path)
	}

	_, err = execute(t, "uninstall", "bash")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(prefix, "etc", "bash_completion.d", "vinoteca"))

	_, err = os.Stat(filepath.Join(prefix, "share", "zsh", "site-functions", "_vinoteca"))
	assert.NoError(t, err)
}
