package readtime

import (
	"strings"
	"testing"

	"github.com/dcsystems/dcsite/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	words := func(n int) string { return strings.Repeat("word ", n) }

	assert.Equal(t, "1 min read", Estimate("", WordsPerMinute))
	assert.Equal(t, "1 min read", Estimate(words(200), WordsPerMinute))
	assert.Equal(t, "2 min read", Estimate(words(201), WordsPerMinute))
	assert.Equal(t, "5 min read", Estimate(words(1000), WordsPerMinute))
	assert.Equal(t, "2 min read", Estimate(words(300), 0))
}

func TestProcess(t *testing.T) {
	site := models.NewSite()
	site.Posts = []*models.Post{
		{ID: "set", ReadTime: "7 min read", Content: "short"},
		{ID: "derived", Content: strings.Repeat("plc ", 450)},
	}

	require.NoError(t, NewReadTimePreprocessor().Process(site))
	assert.Equal(t, "7 min read", site.Posts[0].ReadTime)
	assert.Equal(t, "3 min read", site.Posts[1].ReadTime)
}
