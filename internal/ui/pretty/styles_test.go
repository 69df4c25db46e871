package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, style := range []string{
		styles.Bold.Render("x"),
		styles.Error.Render("x"),
		styles.Expected.Render("x"),
		styles.TableWarnRow.Render("x"),
	} {
		assert.Equal(t, "x", style)
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)
	assert.Contains(t, styles.Error.Render("boom"), "boom")
	assert.Contains(t, styles.Caret.Render("^"), "^")
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer

	tests := []struct {
		name     string
		mode     string
		expected bool
	}{
		{"always", "always", true},
		{"never", "never", false},
		{"auto with buffer", "auto", false},
		{"empty means auto", "", false},
		{"unknown means auto", "rainbow", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, pretty.IsColorEnabled(testCase.mode, &buf))
		})
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always wins over NO_COLOR")
}
