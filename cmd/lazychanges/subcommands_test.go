package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazychanges/internal/config"
)

func TestRunSubcommandsIgnoresNonSubcommandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no args", args: []string{"lazychanges"}},
		{name: "global flag", args: []string{"lazychanges", "--theme", "dracula"}},
		{name: "completion", args: []string{"lazychanges", "completion", "bash"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handled, err := runSubcommands(tt.args)
			assert.False(t, handled)
			assert.NoError(t, err)
		})
	}
}

func TestSuggestConfigKeys(t *testing.T) {
	all := suggestConfigKeys("")
	assert.Contains(t, all, "theme=")
	assert.Contains(t, all, "confirm_discard=")

	filtered := suggestConfigKeys("the")
	require.Len(t, filtered, 1)
	assert.Equal(t, "theme=", filtered[0])
}

func TestSuggestConfigValues(t *testing.T) {
	assert.Contains(t, suggestConfigValues("theme"), "dracula")
	assert.Equal(t, []string{"true", "false"}, suggestConfigValues("confirm_discard"))
	assert.Nil(t, suggestConfigValues("editor"))
}

func TestApplyThemeConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, applyThemeConfig(cfg, ""))
	assert.Equal(t, "dracula", cfg.Theme)

	require.Error(t, applyThemeConfig(cfg, "does-not-exist"))

	require.NoError(t, applyThemeConfig(cfg, "Dracula"))
	assert.Equal(t, "dracula", cfg.Theme)
}
