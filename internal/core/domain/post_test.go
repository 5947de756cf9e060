package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormaliseTag(t *testing.T) {
	assert.Equal(t, UncategorisedTag, NormaliseTag(""))
	assert.Equal(t, UncategorisedTag, NormaliseTag("   "))
	assert.Equal(t, "Promo", NormaliseTag(" Promo "))
}

func TestPost_DisplayTag(t *testing.T) {
	assert.Equal(t, "Uncategorised", Post{}.DisplayTag())
	assert.Equal(t, "Events", Post{Tag: "Events"}.DisplayTag())
}

func TestPost_Normalised(t *testing.T) {
	p := Post{Title: "a"}
	n := p.Normalised()

	assert.Equal(t, "", p.Tag, "original is not modified")
	assert.Equal(t, UncategorisedTag, n.Tag)
}

func TestPost_ExportReady(t *testing.T) {
	tests := []struct {
		name string
		post Post
		want bool
	}{
		{"ready with caption and media", Post{ReadyToPublish: true, Caption: "Hi", MediaLocator: "https://x/y.png"}, true},
		{"empty caption", Post{ReadyToPublish: true, Caption: "", MediaLocator: "https://x/y.png"}, false},
		{"whitespace caption", Post{ReadyToPublish: true, Caption: "  ", MediaLocator: "https://x/y.png"}, false},
		{"not ready", Post{ReadyToPublish: false, Caption: "Hi", MediaLocator: "https://x/y.png"}, false},
		{"no media", Post{ReadyToPublish: true, Caption: "Hi", MediaLocator: " "}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.post.ExportReady())
		})
	}
}
