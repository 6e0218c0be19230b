// Package catalog derives product entries from image assets organized by
// folder name: classify the folder, format the file name into a title, pick
// marketing copy and a vendor link, then group the result for display.
package catalog

import (
	"github.com/dcsystems/dcsite/internal/models"
	"github.com/sirupsen/logrus"
)

// Builder derives products from imported assets
type Builder struct {
	manifest *Manifest
	log      logrus.FieldLogger
}

// NewBuilder creates a builder. A nil manifest behaves like an empty one.
func NewBuilder(manifest *Manifest, log logrus.FieldLogger) *Builder {
	if manifest == nil {
		manifest = EmptyManifest()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{manifest: manifest, log: log}
}

// Derive builds the product for one asset. Manifest fields take precedence
// over derived ones; derivation itself never fails.
func (b *Builder) Derive(ref models.AssetRef) *models.Product {
	p := models.NewProduct(ref)
	entry, pinned := b.manifest.Lookup(ref.Key)

	c := Classify(ref.Key)
	p.Category, p.Subcategory = c.Category, c.Subcategory
	if pinned && entry.Category != "" {
		p.Category = entry.Category
		if entry.Category != models.CategoryPLC {
			p.Subcategory = ""
		}
	}
	if pinned && entry.Subcategory != "" {
		p.Subcategory = entry.Subcategory
	}
	if pinned {
		b.checkSubcategory(p, c)
	}
	if p.Category == models.CategoryOther || (p.Category != models.CategoryPLC && CategoryDefault(p.Category) == DefaultDescription) {
		b.log.WithFields(logrus.Fields{"asset": ref.Key, "category": p.Category}).Debug("Asset did not match a known category")
	}

	p.Title = FormatTitle(p.Filename)
	if pinned && entry.Title != "" {
		p.Title = entry.Title
	}

	p.Description = Describe(DescribeInput{
		Title:       p.Title,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		CleanName:   CleanName(p.Filename),
		Filename:    p.Filename,
	})
	if pinned && entry.Description != "" {
		p.Description = entry.Description
	}

	p.URL = ResolveURL(p)
	if pinned && entry.URL != "" {
		p.URL = entry.URL
	}
	return p
}

// checkSubcategory keeps a pinned product inside the catalog's shape: PLC
// products need one of the fixed product lines and nothing else carries a
// subcategory. Invalid overrides fall back to the derived classification.
func (b *Builder) checkSubcategory(p *models.Product, derived Classification) {
	switch {
	case p.Category == models.CategoryPLC && !IsPLCSubcategory(p.Subcategory):
		b.log.WithFields(logrus.Fields{"asset": p.Image.Key, "subcategory": p.Subcategory}).
			Warn("PLC product needs a product line subcategory; manifest category ignored")
		p.Category, p.Subcategory = derived.Category, derived.Subcategory
	case p.Category != models.CategoryPLC && p.Subcategory != "":
		b.log.WithFields(logrus.Fields{"asset": p.Image.Key, "category": p.Category, "subcategory": p.Subcategory}).
			Warn("Only PLC products carry a subcategory; manifest subcategory ignored")
		p.Subcategory = ""
	}
}

// Build derives every asset in order, dropping the ones the manifest hides
func (b *Builder) Build(refs []models.AssetRef) []*models.Product {
	products := make([]*models.Product, 0, len(refs))
	for _, ref := range refs {
		if entry, ok := b.manifest.Lookup(ref.Key); ok && entry.Hidden {
			continue
		}
		products = append(products, b.Derive(ref))
	}
	b.log.WithField("products", len(products)).Debug("Catalog derived")
	return products
}
