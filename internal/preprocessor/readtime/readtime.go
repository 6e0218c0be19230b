package readtime

import (
	"fmt"
	"strings"

	"github.com/dcsystems/dcsite/internal/models"
)

// WordsPerMinute is the reading speed used for estimates
const WordsPerMinute = 200

// ReadTimePreprocessor fills in a missing post read time from its word count
type ReadTimePreprocessor struct {
	wpm int
}

// NewReadTimePreprocessor creates a new read-time preprocessor
func NewReadTimePreprocessor() *ReadTimePreprocessor {
	return &ReadTimePreprocessor{wpm: WordsPerMinute}
}

// Name returns the preprocessor name
func (r *ReadTimePreprocessor) Name() string {
	return "readtime"
}

// Process sets ReadTime on every post that has none
func (r *ReadTimePreprocessor) Process(site *models.Site) error {
	for _, post := range site.Posts {
		if strings.TrimSpace(post.ReadTime) == "" {
			post.ReadTime = Estimate(post.Content, r.wpm)
		}
	}
	return nil
}

// Estimate formats the reading time of text as "N min read", rounding up
// and never below one minute
func Estimate(text string, wpm int) string {
	if wpm <= 0 {
		wpm = WordsPerMinute
	}
	words := len(strings.Fields(text))
	minutes := (words + wpm - 1) / wpm
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
