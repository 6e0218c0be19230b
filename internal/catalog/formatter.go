package catalog

import (
	"regexp"
	"strings"

	"github.com/dcsystems/dcsite/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Prefix phrases stripped from file names, applied in order.
var prefixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(plc|hmi|robot|servo|invertor|software|invertors)\s*`),
	regexp.MustCompile(`(?i)^(plc\s+)?(iqf|iqr|melsec\s+[qf]|mxf|mxr)\s+`),
	regexp.MustCompile(`(?i)^(low\s+voltage\s+power\s+distribution|integrated\s+hmi|intergrated\s+hmi|engineering\s+software|visualization\s+software|ac\s+servo)\s*`),
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	digitRe       = regexp.MustCompile(`\d`)
	hyphenModelRe = regexp.MustCompile(`(?i)^[a-z]+-[A-Z0-9]+`)
	shortPrefixRe = regexp.MustCompile(`^[a-z]{1,3}[A-Z0-9]+`)
	acronymRe     = regexp.MustCompile(`^[A-Z]{2,}$`)
)

// CleanName strips the extension and known category prefixes from a file
// name and collapses whitespace. The result may be empty.
func CleanName(filename string) string {
	name := models.StripExt(filename)
	for _, re := range prefixPatterns {
		name = re.ReplaceAllString(name, "")
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))
}

// FormatTitle turns a file name into a display title. Model numbers are
// upper-cased, acronyms are kept, other words are title cased. A lowercase
// prefix before capitals reads as a model number, so iQR becomes IQR. The
// unstripped name is used when stripping leaves nothing.
func FormatTitle(filename string) string {
	if clean := CleanName(filename); clean != "" {
		return formatWords(clean)
	}
	raw := strings.TrimSpace(whitespaceRe.ReplaceAllString(models.StripExt(filename), " "))
	if raw == "" {
		// only an extension or whitespace; keep whatever was given
		return filename
	}
	return formatWords(raw)
}

func formatWords(name string) string {
	words := strings.Split(name, " ")
	for i, w := range words {
		words[i] = formatWord(w)
	}
	return strings.Join(words, " ")
}

func formatWord(word string) string {
	switch {
	case word == "":
		return word
	case digitRe.MatchString(word), hyphenModelRe.MatchString(word), shortPrefixRe.MatchString(word):
		return strings.ToUpper(word)
	// mixed leading-lowercase words never get here; shortPrefixRe claims them
	case acronymRe.MatchString(word):
		return word
	default:
		// Casers carry state, so each call gets its own
		return cases.Title(language.English).String(word)
	}
}
