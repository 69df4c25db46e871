package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/internal/logging"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"DEBUG", log.DebugLevel},
		{"verbose", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.level, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			require.NotNil(t, logger)
			assert.Equal(t, testCase.want, logger.GetLevel())
		})
	}
}

func TestNewInteractiveIsInfo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, log.InfoLevel, logging.NewInteractive().GetLevel())
}

// Tests below touch the process-wide default logger and do not run in
// parallel.

func TestSetDefaultAndLevel(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.New("error")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, replacement.GetLevel())
}

func TestFromContext(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))

	//nolint:staticcheck // nil context is handled on purpose
	assert.Same(t, logging.Default(), logging.FromContext(nil))

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
}

func TestWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	ctx := logging.WithLogger(context.Background(), logger)
	ctx = logging.With(ctx, logging.FieldPath, "conf/app.properties")

	logging.FromContext(ctx).Debug("file linted", logging.FieldDiagnosticsTotal, 2)

	out := buf.String()
	assert.Contains(t, out, "file linted")
	assert.Contains(t, out, "path=conf/app.properties")
	assert.Contains(t, out, "diagnostics_total=2")
}
