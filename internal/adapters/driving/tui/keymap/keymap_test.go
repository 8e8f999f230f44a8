package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{"quit", km.Quit.Keys(), []string{"q", "ctrl+c"}},
		{"help", km.Help.Keys(), []string{"?"}},
		{"back", km.Back.Keys(), []string{"esc"}},
		{"up", km.Up.Keys(), []string{"up", "k"}},
		{"down", km.Down.Keys(), []string{"down", "j"}},
		{"select", km.Select.Keys(), []string{"enter"}},
		{"reload", km.Reload.Keys(), []string{"r"}},
		{"next problem", km.NextProblem.Keys(), []string{"n"}},
		{"problems only", km.ProblemsOnly.Keys(), []string{"f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.keys)
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Len(t, km.ListHelp(), 5)

	full := km.FullHelp()
	require.Len(t, full, 3)
	for _, group := range full {
		assert.Len(t, group, 3)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.Quit))
}
