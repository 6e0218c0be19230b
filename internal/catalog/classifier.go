package catalog

import (
	"strings"

	"github.com/dcsystems/dcsite/internal/models"
)

// MarkerDir is the directory segment under which product folders live.
const MarkerDir = "dynamic-products"

// Classification is the result of classifying an asset path
type Classification struct {
	Category    string
	Subcategory string
}

// rule assigns a category when every group of terms matches. Within a group
// any one term is enough.
type rule struct {
	all         [][]string
	category    string
	subcategory string
}

func (r rule) matches(folder string) bool {
	for _, anyOf := range r.all {
		hit := false
		for _, term := range anyOf {
			if strings.Contains(folder, term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// rules is evaluated top to bottom, first match wins. "integrated hmi" sits
// after "hmi" and is therefore shadowed; the table keeps the historical order.
var rules = []rule{
	{all: [][]string{{"iqf"}, {"plc"}}, category: models.CategoryPLC, subcategory: "PLC iQF"},
	{all: [][]string{{"iqr"}, {"plc"}}, category: models.CategoryPLC, subcategory: "PLC iQR"},
	{all: [][]string{{"melsec q", "q series"}, {"plc"}}, category: models.CategoryPLC, subcategory: "PLC MELSEC Q Series"},
	{all: [][]string{{"melsec f", "f series"}, {"plc"}}, category: models.CategoryPLC, subcategory: "PLC MELSEC F Series"},
	{all: [][]string{{"mxf"}, {"plc"}}, category: models.CategoryPLC, subcategory: "PLC MXF Series"},
	{all: [][]string{{"mxr"}, {"plc"}}, category: models.CategoryPLC, subcategory: "PLC MXR Series"},
	{all: [][]string{{"hmi"}}, category: "HMI"},
	{all: [][]string{{"robot"}}, category: "Robot"},
	{all: [][]string{{"invertor"}}, category: "Invertors"},
	{all: [][]string{{"servo"}}, category: "AC Servo"},
	{all: [][]string{{"software"}}, category: "Software"},
	{all: [][]string{{"integrated hmi", "intergrated hmi"}}, category: "Integrated HMI"},
	{all: [][]string{{"low voltage", "power"}}, category: "Low Voltage Power Distribution"},
}

// Classify derives the category of an asset from the folder that follows the
// marker segment. It never fails: paths without a folder after the marker are
// "Other" and folders matching no rule keep their own name as category.
func Classify(assetPath string) Classification {
	parts := strings.Split(strings.ReplaceAll(assetPath, "\\", "/"), "/")
	idx := -1
	for i, p := range parts {
		if p == MarkerDir {
			idx = i
			break
		}
	}
	if idx == -1 || idx == len(parts)-1 {
		return Classification{Category: models.CategoryOther}
	}

	folder := parts[idx+1]
	normalized := strings.TrimSpace(strings.ToLower(folder))
	for _, r := range rules {
		if r.matches(normalized) {
			return Classification{Category: r.category, Subcategory: r.subcategory}
		}
	}
	return Classification{Category: folder}
}
