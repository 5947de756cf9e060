package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, theme.Primary)
	assert.NotEmpty(t, theme.Secondary)
	assert.NotEmpty(t, theme.Foreground)
	assert.NotEmpty(t, theme.Muted)
	assert.NotEmpty(t, theme.Success)
	assert.NotEmpty(t, theme.Warning)
	assert.NotEmpty(t, theme.Error)
	assert.NotEmpty(t, theme.Border)
	assert.NotEmpty(t, theme.Bar)
}

func TestDefaultTheme_StatusColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	assert.NotEqual(t, theme.Success, theme.Error)
	assert.NotEqual(t, theme.Warning, theme.Error)
	assert.NotEqual(t, theme.Primary, theme.Secondary)
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_CustomTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = "#000000"

	s := NewStyles(theme)

	assert.Equal(t, theme, s.Theme())
}

func TestStyles_TitleIsBold(t *testing.T) {
	s := DefaultStyles()

	assert.True(t, s.Title.GetBold())
	assert.True(t, s.Ready.GetBold())
}

func TestStyles_CanRenderText(t *testing.T) {
	s := DefaultStyles()

	for name, rendered := range map[string]string{
		"title": s.Title.Render("Drafts"),
		"tag":   s.Tag.Render("Launch"),
		"card":  s.Card.Render("body"),
		"label": s.Label.Render("Caption"),
	} {
		assert.NotEmpty(t, rendered, name)
	}
	assert.Contains(t, s.Tag.Render("Launch"), "Launch")
}
