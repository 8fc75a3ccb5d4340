package logging_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vinoteca/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "error message")
	assert.NotContains(t, output, "debug message")
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	tests := []struct {
		name     string
		config   *logging.Config
		contains []string
		excludes []string
	}{
		{
			name:     "debug level",
			config:   &logging.Config{Level: "debug", Format: "json"},
			contains: []string{`"level":"debug"`, `"level":"info"`},
		},
		{
			name:     "error level only",
			config:   &logging.Config{Level: "error", Format: "json"},
			contains: []string{`"level":"error"`},
			excludes: []string{`"level":"info"`},
		},
		{
			name:     "default fields",
			config:   &logging.Config{Level: "info", Format: "json", Fields: map[string]any{"service": "vinoteca", "replica": 2}},
			contains: []string{`"service":"vinoteca"`, `"replica":2`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(tt.config).Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestConfigFileOutput(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	path := t.TempDir() + "/vinoteca.log"
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "info",
		Format: "json",
		Output: path,
	})
	logger.Info().Msg("written to file")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to file")
}

func TestConfigureFromEnv(t *testing.T) {
	original := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(originalLevel)
	})

	path := t.TempDir() + "/env.log"
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_OUTPUT", path)
	t.Setenv("LOG_FIELDS", "service=vinoteca, region=mendoza")

	logging.ConfigureFromEnv()
	logging.Info().Msg("hidden")
	logging.Warn().Msg("shown")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "shown")
	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), `"service":"vinoteca"`)
	assert.Contains(t, string(content), `"region":"mendoza"`)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithEntity(ctx, "winery", "b1")
	ctx = logging.WithSource(ctx, "vinoteca.json")
	ctx = logging.WithOperation(ctx, "load")
	ctx = logging.WithRequestID(ctx, "req-42")

	logging.FromContext(ctx).Info().Msg("resolving wines")

	testLogger.AssertContains(t, `"entity_kind":"winery"`)
	testLogger.AssertContains(t, `"entity_id":"b1"`)
	testLogger.AssertContains(t, `"source":"vinoteca.json"`)
	testLogger.AssertContains(t, `"operation":"load"`)
	testLogger.AssertContains(t, `"request_id":"req-42"`)
	assert.Equal(t, "req-42", logging.RequestID(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Empty(t, logging.RequestID(context.Background()))
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Info().Msg("message 1")
	tl.Error().Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertNotContains(t, "message 3")
	tl.AssertCount(t, 2)
	assert.True(t, tl.ContainsAll("message 1", "message 2"))

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Info().Str("wine", "v1").Msg("captured")
	tl.AssertContains(t, `"wine":"v1"`)
}
