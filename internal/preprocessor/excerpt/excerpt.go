package excerpt

import (
	"regexp"
	"strings"

	"github.com/dcsystems/dcsite/internal/models"
)

var (
	imageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	emphasisRe = regexp.MustCompile("[*_`]+")
	spaceRe    = regexp.MustCompile(`\s+`)
)

// ExcerptPreprocessor fills in a missing post excerpt from the first
// paragraph of the body
type ExcerptPreprocessor struct{}

// NewExcerptPreprocessor creates a new excerpt preprocessor
func NewExcerptPreprocessor() *ExcerptPreprocessor {
	return &ExcerptPreprocessor{}
}

// Name returns the preprocessor name
func (e *ExcerptPreprocessor) Name() string {
	return "excerpt"
}

// Process sets Excerpt on every post that has none
func (e *ExcerptPreprocessor) Process(site *models.Site) error {
	for _, post := range site.Posts {
		if strings.TrimSpace(post.Excerpt) == "" {
			post.Excerpt = FirstParagraph(post.Content)
		}
	}
	return nil
}

// FirstParagraph returns the first prose paragraph of a markdown body as
// plain text. Headings, fences, quotes and list items are skipped.
func FirstParagraph(markdown string) string {
	var para []string
	inFence := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if trimmed == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		if len(para) == 0 && isBlockMarker(trimmed) {
			continue
		}
		para = append(para, trimmed)
	}

	text := strings.Join(para, " ")
	text = imageRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = emphasisRe.ReplaceAllString(text, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

func isBlockMarker(line string) bool {
	switch {
	case strings.HasPrefix(line, "#"),
		strings.HasPrefix(line, ">"),
		strings.HasPrefix(line, "- "),
		strings.HasPrefix(line, "* "),
		strings.HasPrefix(line, "|"),
		strings.HasPrefix(line, "!["),
		strings.HasPrefix(line, "<"):
		return true
	}
	return false
}
