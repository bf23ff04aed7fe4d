package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()

	assert.Contains(t, names, DefaultTheme)
	assert.IsNonDecreasing(t, names)
}

func TestUseTheme(t *testing.T) {
	t.Cleanup(func() { UseTheme(DefaultTheme) })

	require.True(t, UseTheme("gruvbox"))
	assert.Equal(t, themes["gruvbox"], CurrentPalette)

	assert.False(t, UseTheme("nope"))
	assert.Equal(t, themes[DefaultTheme], CurrentPalette)
}

func TestGlamourStyle_UsesPalette(t *testing.T) {
	t.Cleanup(func() { UseTheme(DefaultTheme) })
	UseTheme("catppuccin")

	cfg := GlamourStyle()
	require.NotNil(t, cfg.H2.Color)
	assert.Equal(t, "#89b4fa", *cfg.H2.Color)
}

func TestIsLight(t *testing.T) {
	assert.True(t, isLight(themes["solarized-light"]))
	assert.False(t, isLight(themes["tokyo-night"]))
}

func TestColorHexPtr(t *testing.T) {
	assert.Nil(t, colorHexPtr(""))
	assert.Nil(t, colorHexPtr("not-a-color"))

	got := colorHexPtr("#ABCDEF")
	require.NotNil(t, got)
	assert.Equal(t, "#abcdef", *got)
}

func TestHuhTheme(t *testing.T) {
	assert.NotNil(t, HuhTheme())
}
