package renderer

import (
	"bytes"
	"fmt"
	htmlutil "html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	headingRe  = regexp.MustCompile(`<h([2-4])>(.*?)</h[2-4]>`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	slugDropRe = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)
	slugSpace  = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// markdownConverter turns post bodies into sanitized HTML
type markdownConverter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newMarkdownConverter() *markdownConverter {
	policy := bluemonday.UGCPolicy()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return &markdownConverter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.DefinitionList,
			),
		),
		policy: policy,
	}
}

// Convert renders markdown, sanitizes the result and gives h2-h4 headings
// unique anchor ids
func (c *markdownConverter) Convert(content string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	safe := c.policy.Sanitize(buf.String())
	return addHeadingIDs(safe), nil
}

func addHeadingIDs(html string) string {
	used := map[string]int{}
	return headingRe.ReplaceAllStringFunc(html, func(match string) string {
		parts := headingRe.FindStringSubmatch(match)
		level, inner := parts[1], parts[2]
		id := slugify(htmlutil.UnescapeString(tagRe.ReplaceAllString(inner, "")))
		if id == "" {
			id = "section"
		}
		if n := used[id]; n > 0 {
			used[id] = n + 1
			id = fmt.Sprintf("%s-%d", id, n)
		} else {
			used[id] = 1
		}
		return fmt.Sprintf(`<h%s id="%s">%s</h%s>`, level, id, inner, level)
	})
}

// slugify converts text to an anchor slug
func slugify(text string) string {
	s := strings.ToLower(text)
	s = slugDropRe.ReplaceAllString(s, "")
	s = slugSpace.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
