package catalog

import (
	"strings"

	"github.com/dcsystems/dcsite/internal/models"
)

const vendorBase = "https://www.mitsubishielectric.com/fa/"

// FallbackURL is used when nothing more specific is known.
const FallbackURL = vendorBase

const (
	got2000URL = vendorBase + "products/hmi/got/items/got2000/index.html"
	iqrCPUURL  = vendorBase + "products/cnt/plcr/pmerit/cpu/cpu.html"
)

// linkRule maps keywords found in the lower-cased title or file name to a page.
type linkRule struct {
	titleKeywords []string
	fileKeywords  []string
	url           string
}

func (l linkRule) matches(titleLower, filenameLower string) bool {
	for _, kw := range l.titleKeywords {
		if strings.Contains(titleLower, kw) {
			return true
		}
	}
	for _, kw := range l.fileKeywords {
		if strings.Contains(filenameLower, kw) {
			return true
		}
	}
	return false
}

var iqrLinks = []linkRule{
	{[]string{"general control cpu"}, []string{"general control cpu"}, iqrCPUURL},
	{[]string{"analog modules"}, []string{"analog modules"}, vendorBase + "products/cnt/plcr/pmerit/analog/"},
	{[]string{"io modules", "i/o modules"}, []string{"io modules"}, vendorBase + "products/cnt/plcr/pmerit/io/"},
	{[]string{"motion control cpu"}, []string{"motion control cpu"}, vendorBase + "products/cnt/plcr/pmerit/cpu/motion.html"},
	{[]string{"motion modules"}, []string{"motion modules"}, vendorBase + "products/cnt/plcr/pmerit/motion/"},
	{[]string{"process control cpu", "position control cpu"}, []string{"process control cpu"}, vendorBase + "products/cnt/plcr/pmerit/cpu/process.html"},
	{[]string{"safety control cpu"}, []string{"safety control cpu"}, vendorBase + "products/cnt/plcr/pmerit/cpu/safety.html"},
	{[]string{"network modules"}, []string{"network modules"}, vendorBase + "products/cnt/plcr/pmerit/network/"},
}

var hmiLinks = []linkRule{
	{[]string{"got2000", "got 2000"}, []string{"got 2000"}, got2000URL},
	{[]string{"got3000", "got 3000"}, []string{"got3000"}, vendorBase + "products/hmi/got/items/got3000/index.html"},
	{[]string{"got simple", "simple"}, []string{"simple"}, vendorBase + "products/hmi/got/items/got_simple/index.html"},
	{[]string{"softgot", "soft got"}, []string{"softgot"}, vendorBase + "products/hmi/got/items/sgt/index.html"},
}

var subcategoryLinks = map[string]string{
	"PLC iQF":             vendorBase + "products/cnt/plcf/pmerit/concept/index.html",
	"PLC MELSEC Q Series": vendorBase + "products/cnt/plcq/pmerit/concept/index.html",
	"PLC MELSEC F Series": vendorBase + "products/cnt/plc_fx/pmerit/contents/index.html",
	"PLC MXR Series":      vendorBase + "products/cnt/mxc/items/mxcr/index.html",
}

var categoryLinks = map[string]string{
	"AC Servo":                       vendorBase + "products/drv/servo/",
	"Invertors":                      vendorBase + "products/drv/inv/pmerit/index.html",
	"Low Voltage Power Distribution": vendorBase + "in_en/products/lvd/index.html",
	"Robot":                          vendorBase + "products/rbt/robot/",
	"Integrated HMI":                 got2000URL,
	"Software":                       vendorBase + "products/software/visualisation/genesis64/index.html",
}

func firstLink(rules []linkRule, titleLower, filenameLower, fallback string) string {
	for _, r := range rules {
		if r.matches(titleLower, filenameLower) {
			return r.url
		}
	}
	return fallback
}

// ResolveURL picks the vendor documentation page for a product. MXF has no
// dedicated page and ends up on FallbackURL like unknown categories.
func ResolveURL(p *models.Product) string {
	titleLower := strings.ToLower(p.Title)
	filenameLower := strings.ToLower(p.Filename)

	if p.Subcategory == "PLC iQR" {
		return firstLink(iqrLinks, titleLower, filenameLower, iqrCPUURL)
	}
	if u, ok := subcategoryLinks[p.Subcategory]; ok {
		return u
	}
	if p.Category == "HMI" {
		return firstLink(hmiLinks, titleLower, filenameLower, got2000URL)
	}
	if u, ok := categoryLinks[p.Category]; ok {
		return u
	}
	return FallbackURL
}
