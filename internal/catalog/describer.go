package catalog

import (
	"strings"

	"github.com/dcsystems/dcsite/internal/models"
)

// DefaultDescription is used for categories without their own copy.
const DefaultDescription = "Industrial automation solution designed for reliability and performance."

// categoryDefaults holds the fallback copy per category.
var categoryDefaults = map[string]string{
	models.CategoryPLC:               "Programmable Logic Controller designed for reliable industrial automation with robust communication and control capabilities.",
	"HMI":                            "Human-Machine Interface with intuitive touchscreen display for seamless operator interaction and real-time system monitoring.",
	"Robot":                          "Industrial robot system designed for precision automation, assembly, and material handling applications with high repeatability.",
	"Invertors":                      "Variable frequency drive for precise motor control, energy efficiency, and smooth operation across various industrial applications.",
	"AC Servo":                       "High-performance AC servo motor system providing exceptional torque control and precise positioning for automation applications.",
	"Software":                       "Engineering and visualization software suite for system design, programming, monitoring, and configuration of automation systems.",
	"Integrated HMI":                 "Integrated HMI solution combining display and control functions in a compact design for space-efficient automation applications.",
	"Low Voltage Power Distribution": "Low voltage power distribution products including circuit breakers and protection devices for safe and reliable electrical systems.",
}

// subcategoryCopy is keyed by the subcategory without its "PLC " prefix.
var subcategoryCopy = map[string]string{
	"iQF":             "Compact and versatile iQ-F series PLC offering high-speed processing and extensive I/O capabilities for mid-range automation applications.",
	"iQR":             "Advanced iQ-R series PLC with modular architecture, supporting complex control systems with high-performance CPUs and extensive module options.",
	"MELSEC Q Series": "High-performance MELSEC Q Series PLC designed for large-scale automation systems with advanced networking and motion control capabilities.",
	"MELSEC F Series": "Cost-effective MELSEC F Series PLC providing reliable control for small to medium-scale automation applications with compact design.",
	"MXF Series":      "Next-generation MXF Series PLC featuring advanced processing power and integrated safety functions for modern industrial automation.",
	"MXR Series":      "Scalable MXR Series PLC offering flexible configuration options and robust performance for diverse automation requirements.",
}

// keywordRule matches when any title keyword is found in the upper-cased
// title or any file keyword in the lower-cased file name.
type keywordRule struct {
	titleKeywords []string
	fileKeywords  []string
	description   string
}

func (k keywordRule) matches(titleUpper, filenameLower string) bool {
	for _, kw := range k.titleKeywords {
		if strings.Contains(titleUpper, kw) {
			return true
		}
	}
	for _, kw := range k.fileKeywords {
		if strings.Contains(filenameLower, kw) {
			return true
		}
	}
	return false
}

// keywordRules refine the copy inside a category. First match wins.
var keywordRules = map[string][]keywordRule{
	"HMI": {
		{
			titleKeywords: []string{"GOT2000", "GOT 2000"},
			fileKeywords:  []string{"got2000", "got 2000"},
			description:   "GOT2000 series graphic operation terminal with high-resolution touchscreen, multi-touch gestures, and seamless connectivity to Mitsubishi Electric controllers.",
		},
		{
			titleKeywords: []string{"GOT SIMPLE"},
			fileKeywords:  []string{"got simple", "simple"},
			description:   "GOT SIMPLE series HMI delivering essential operator functions and clear widescreen visualization at an economical price point.",
		},
		{
			titleKeywords: []string{"SOFTGOT", "SOFT GOT"},
			fileKeywords:  []string{"softgot"},
			description:   "GT SoftGOT software HMI that turns a standard PC or tablet into a fully featured operator panel for remote monitoring.",
		},
	},
	"Invertors": {
		{
			titleKeywords: []string{"FR-A800", "A800"},
			fileKeywords:  []string{"a800"},
			description:   "FR-A800 premium inverter with advanced vector control, built-in PLC functionality, and high-torque performance for demanding drive applications.",
		},
		{
			titleKeywords: []string{"FR-E800", "E800"},
			fileKeywords:  []string{"e800"},
			description:   "FR-E800 compact inverter combining network-ready connectivity, predictive maintenance, and energy-saving motor control.",
		},
	},
	"AC Servo": {
		{
			titleKeywords: []string{"MR-J5", "J5"},
			fileKeywords:  []string{"mr-j5", "j5"},
			description:   "MELSERVO-J5 servo system with industry-leading response, high-resolution encoders, and CC-Link IE TSN motion networking.",
		},
	},
	"Robot": {
		{
			titleKeywords: []string{"SCARA", "RH-"},
			fileKeywords:  []string{"scara"},
			description:   "MELFA SCARA robot engineered for high-speed pick-and-place, assembly, and packaging with exceptional cycle times.",
		},
	},
}

// DescribeInput bundles everything the resolver may look at.
type DescribeInput struct {
	Title       string
	Category    string
	Subcategory string
	CleanName   string
	Filename    string
}

// Describe selects marketing copy for a product. PLC subcategories win, then
// category keyword rules, then an exact cleaned-name entry, then the category
// default and finally DefaultDescription.
func Describe(in DescribeInput) string {
	if in.Subcategory != "" {
		if d, ok := subcategoryCopy[strings.TrimPrefix(in.Subcategory, "PLC ")]; ok {
			return d
		}
	}

	titleUpper := strings.ToUpper(in.Title)
	filenameLower := strings.ToLower(in.Filename)
	for _, kr := range keywordRules[in.Category] {
		if kr.matches(titleUpper, filenameLower) {
			return kr.description
		}
	}

	if d, ok := namedCopy[strings.ToLower(in.CleanName)]; ok && in.CleanName != "" {
		return d
	}

	if d, ok := categoryDefaults[in.Category]; ok {
		return d
	}
	return DefaultDescription
}

// namedCopy holds copy for individual products keyed by lower-cased clean name.
var namedCopy = map[string]string{
	"genesis64": "GENESIS64 HMI/SCADA suite offering 3D graphics, unified data connectivity, and advanced analytics for plant-wide visualization.",
}

// CategoryDefault returns the fallback copy for a category
func CategoryDefault(category string) string {
	if d, ok := categoryDefaults[category]; ok {
		return d
	}
	return DefaultDescription
}
