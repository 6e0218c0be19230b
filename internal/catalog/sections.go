package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dcsystems/dcsite/internal/models"
)

// Categories returns every distinct category, sorted.
func Categories(products []*models.Product) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Organize groups products into display sections. With no filter, or the PLC
// filter, a "PLC" header comes first followed by the non-empty PLC
// subcategories in their fixed order. Every other category follows in
// alphabetical order when it has products and passes the filter.
func Organize(products []*models.Product, filter string) []models.Section {
	var sections []models.Section

	if filter == "" || filter == models.CategoryPLC {
		bySub := map[string][]*models.Product{}
		plcCount := 0
		for _, p := range products {
			if p.Category == models.CategoryPLC {
				plcCount++
				bySub[p.Subcategory] = append(bySub[p.Subcategory], p)
			}
		}
		if plcCount > 0 {
			sections = append(sections, models.Section{Name: models.CategoryPLC, Products: []*models.Product{}})
			for _, sub := range models.PLCSubcategories {
				if ps := bySub[sub]; len(ps) > 0 {
					sections = append(sections, models.Section{Name: sub, IsSubsection: true, Products: ps})
				}
			}
		}
	}

	for _, category := range Categories(products) {
		if category == models.CategoryPLC {
			continue
		}
		if filter != "" && filter != category {
			continue
		}
		var ps []*models.Product
		for _, p := range products {
			if p.Category == category {
				ps = append(ps, p)
			}
		}
		if len(ps) > 0 {
			sections = append(sections, models.Section{Name: category, Products: ps})
		}
	}
	return sections
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// CategorySlug turns a category label into a URL segment ("AC Servo" -> "ac-servo")
func CategorySlug(category string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(category), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "other"
	}
	return s
}
