package models

import "path"

// Fixed category labels that the catalog treats specially.
const (
	CategoryPLC   = "PLC"
	CategoryOther = "Other"
)

// PLCSubcategories lists the PLC product lines in display order.
var PLCSubcategories = []string{
	"PLC iQF",
	"PLC iQR",
	"PLC MELSEC Q Series",
	"PLC MELSEC F Series",
	"PLC MXF Series",
	"PLC MXR Series",
}

// AssetRef points at an imported image, both at its source and in the built site.
type AssetRef struct {
	// Key is the slash separated path relative to the assets root
	Key string
	// Path is the site-absolute URL of the published file (e.g. /assets/dynamic-products/HMI/got.png)
	Path string
	// Size in bytes of the source file
	Size int64
}

// Product is a catalog entry derived from a single image asset
type Product struct {
	Image       AssetRef
	Thumbnail   string // optional site-absolute thumbnail URL
	Filename    string
	Name        string // filename without extension
	Category    string
	Subcategory string // empty unless Category is PLC
	Title       string
	Description string
	URL         string // vendor "Details" link
}

// NewProduct creates a product for an asset with only the file facts filled in
func NewProduct(ref AssetRef) *Product {
	filename := path.Base(ref.Key)
	return &Product{
		Image:    ref,
		Filename: filename,
		Name:     StripExt(filename),
	}
}

// GroupKey is the key used to group products into sections
func (p *Product) GroupKey() string {
	if p.Subcategory != "" {
		return p.Subcategory
	}
	return p.Category
}

// ImageURL prefers the thumbnail when one was generated
func (p *Product) ImageURL() string {
	if p.Thumbnail != "" {
		return p.Thumbnail
	}
	return p.Image.Path
}

// Section is one heading of the rendered catalog
type Section struct {
	Name         string
	IsSubsection bool
	Products     []*Product
}

// Client is a logo shown on the clients page
type Client struct {
	Name     string
	Filename string
	Image    AssetRef
}

// StripExt removes the final extension from a file name ("a.b.png" -> "a.b")
func StripExt(name string) string {
	ext := path.Ext(name)
	if ext == "" || ext == name {
		return name
	}
	return name[:len(name)-len(ext)]
}
