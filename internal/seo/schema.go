package seo

import (
	"strings"

	"github.com/dcsystems/dcsite/internal/models"
)

const schemaContext = "https://schema.org"

// Identity is the organization facts shared by every schema
type Identity struct {
	Name        string
	Description string
	BaseURL     string
	Logo        string // site-absolute path
}

func (id Identity) url(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return CanonicalURL(id.BaseURL, path)
}

func (id Identity) publisher() Schema {
	s := Schema{
		"@type": "Organization",
		"name":  id.Name,
		"url":   id.url("/"),
	}
	if id.Logo != "" {
		s["logo"] = id.url(id.Logo)
	}
	return s
}

// Organization describes the company for the home page, with one postal
// address and contact point per office
func Organization(id Identity, offices []models.Office) Schema {
	s := id.publisher()
	s["@context"] = schemaContext
	if id.Description != "" {
		s["description"] = id.Description
	}

	var addresses, contacts []Schema
	for _, o := range offices {
		if o.Address != "" {
			addresses = append(addresses, Schema{
				"@type":         "PostalAddress",
				"name":          o.Name,
				"streetAddress": o.Address,
			})
		}
		if o.Phone != "" || o.Email != "" {
			cp := Schema{
				"@type":       "ContactPoint",
				"contactType": "customer service",
				"areaServed":  o.Name,
			}
			if o.Phone != "" {
				cp["telephone"] = o.Phone
			}
			if o.Email != "" {
				cp["email"] = o.Email
			}
			contacts = append(contacts, cp)
		}
	}
	if len(addresses) > 0 {
		s["address"] = addresses
	}
	if len(contacts) > 0 {
		s["contactPoint"] = contacts
	}
	return s
}

// Article describes one blog post
func Article(id Identity, route string, post *models.Post) Schema {
	s := Schema{
		"@context":         schemaContext,
		"@type":            "BlogPosting",
		"headline":         post.Title,
		"url":              id.url(route),
		"mainEntityOfPage": id.url(route),
		"publisher":        id.publisher(),
		"author":           id.publisher(),
	}
	if post.Excerpt != "" {
		s["description"] = post.Excerpt
	}
	if post.Category != "" {
		s["articleSection"] = post.Category
	}
	if !post.Time.IsZero() {
		s["datePublished"] = post.Time.Format("2006-01-02")
	}
	return s
}

// ProductCatalog lists products as an ItemList
func ProductCatalog(id Identity, route, name string, products []*models.Product) Schema {
	items := make([]Schema, 0, len(products))
	for i, p := range products {
		product := Schema{
			"@type":       "Product",
			"name":        p.Title,
			"description": p.Description,
			"category":    p.GroupKey(),
			"image":       id.url(p.Image.Path),
		}
		if p.URL != "" {
			product["url"] = p.URL
		}
		items = append(items, Schema{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     product,
		})
	}
	return Schema{
		"@context":        schemaContext,
		"@type":           "ItemList",
		"name":            name,
		"url":             id.url(route),
		"numberOfItems":   len(products),
		"itemListElement": items,
	}
}

// ContactPage describes the contact route and the organization behind it
func ContactPage(id Identity, route string, offices []models.Office) Schema {
	return Schema{
		"@context":   schemaContext,
		"@type":      "ContactPage",
		"name":       "Contact " + id.Name,
		"url":        id.url(route),
		"mainEntity": Organization(id, offices),
	}
}
