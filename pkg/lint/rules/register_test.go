package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
)

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	RegisterAll(registry)

	assert.Equal(t, []string{"PP000", "PP001", "PP002", "PP003", "PP004"}, registry.IDs())

	rule, ok := registry.GetByName("separator-style")
	require.True(t, ok)
	assert.Equal(t, "PP003", rule.ID())
}

func TestRegisterAliases(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	RegisterAll(registry)
	RegisterAliases(registry)

	id, _, ok := registry.Resolve("duplicates")
	require.True(t, ok)
	assert.Equal(t, "PP001", id)
}

func TestRuleInfos(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	RegisterAll(registry)

	infos := RuleInfos(registry)
	require.Len(t, infos, 5)
	assert.Equal(t, "syntax", infos[0].Name)
	assert.Equal(t, config.SeverityError, infos[0].Severity)
	assert.False(t, infos[4].Enabled, "empty-value is opt-in")
	assert.True(t, infos[1].CanFix)
	assert.True(t, infos[3].CanFix)
	assert.False(t, infos[2].CanFix)

	require.NotNil(t, config.DefaultRuleInfoProvider, "init wires the template provider")
}
