package excerpt

import (
	"testing"

	"github.com/dcsystems/dcsite/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstParagraph(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "First line\ncontinues here.\n\nSecond paragraph.", "First line continues here."},
		{"skips heading", "# Title\n\nBody text.", "Body text."},
		{"strips links and emphasis", "Read **the** [guide](https://x.io) `now`.", "Read the guide now."},
		{"skips fence", "```go\nfmt.Println()\n```\n\nAfter code.", "After code."},
		{"skips leading image", "![plant](/assets/plant.png)\n\nCaption text.", "Caption text."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstParagraph(tt.in))
		})
	}
}

func TestProcessKeepsAuthoredExcerpt(t *testing.T) {
	site := models.NewSite()
	site.Posts = []*models.Post{
		{ID: "a", Excerpt: "Authored.", Content: "Body."},
		{ID: "b", Content: "## Heading\n\nDerived from body.\n\nMore."},
	}

	pp := NewExcerptPreprocessor()
	require.NoError(t, pp.Process(site))
	assert.Equal(t, "excerpt", pp.Name())
	assert.Equal(t, "Authored.", site.Posts[0].Excerpt)
	assert.Equal(t, "Derived from body.", site.Posts[1].Excerpt)
}
