package renderer

import (
	"fmt"
	"strings"

	"github.com/dcsystems/dcsite/internal/catalog"
	"github.com/dcsystems/dcsite/internal/models"
	"github.com/dcsystems/dcsite/internal/seo"
)

const (
	notFoundRoute  = "/404"
	productsRoute  = "/products"
	categoryPrefix = "/products/category/"
	blogRoute      = "/blog"
	newsLimit      = 3

	defaultTrainingURL = "https://dcsri.org/"
	defaultTagline     = "Changes for the Better. Innovation drives our commitment to creating a sustainable future."
	noProductsMessage  = "No products found in this category."
)

// page is one file to render
type page struct {
	route       string
	template    string
	title       string
	description string
	script      *seo.Script
	data        map[string]interface{}
}

func (p *page) canonicalRoute() string {
	return p.route
}

// navItems are the primary navigation links, in display order
var navItems = []models.Link{
	{Name: "Home", Href: "/"},
	{Name: "About Us", Href: "/about"},
	{Name: "Products", Href: productsRoute},
	{Name: "Blog", Href: blogRoute},
	{Name: "Clients", Href: "/clients"},
	{Name: "Contact", Href: "/contact"},
}

var (
	defaultFooterProducts = []models.Link{
		{Name: "Factory Automation", Href: "#"},
		{Name: "Building Systems", Href: "#"},
		{Name: "Energy Solutions", Href: "#"},
		{Name: "Transportation", Href: "#"},
		{Name: "Home Appliances", Href: "#"},
	}
	defaultFooterCompany = []models.Link{
		{Name: "About Us", Href: "/about"},
		{Name: "Careers", Href: "#"},
		{Name: "News", Href: "#"},
		{Name: "Sustainability", Href: "#"},
	}
	defaultFooterSupport = []models.Link{
		{Name: "Contact", Href: "/contact"},
		{Name: "Downloads", Href: "#"},
		{Name: "FAQs", Href: "#"},
		{Name: "Support Portal", Href: "#"},
	}
)

// navLinks marks the link of the section route belongs to as active
func navLinks(route string) []map[string]interface{} {
	links := make([]map[string]interface{}, 0, len(navItems))
	for _, l := range navItems {
		active := route == l.Href || (l.Href != "/" && strings.HasPrefix(route, l.Href+"/"))
		links = append(links, map[string]interface{}{
			"name":   l.Name,
			"href":   l.Href,
			"active": active,
		})
	}
	return links
}

func orDefault(links, fallback []models.Link) []models.Link {
	if len(links) == 0 {
		return fallback
	}
	return links
}

func siteName(ctx *RenderContext) string {
	if ctx.Site.Data.Company != "" {
		return ctx.Site.Data.Company
	}
	return ctx.Config.Site.Title
}

func logoPath(site models.SiteData) string {
	if site.Logo != "" {
		return site.Logo
	}
	return "/logo.svg"
}

func tagline(site models.SiteData) string {
	if site.Tagline != "" {
		return site.Tagline
	}
	return defaultTagline
}

func trainingURL(site models.SiteData) string {
	if site.TrainingInstURL != "" {
		return site.TrainingInstURL
	}
	return defaultTrainingURL
}

func categorySlug(category string) string {
	return catalog.CategorySlug(category)
}

// pageBuilder collects pages and their structured data
type pageBuilder struct {
	ctx   *RenderContext
	id    seo.Identity
	pages []*page
}

func (b *pageBuilder) add(p *page, scriptID string, schema seo.Schema) error {
	if schema != nil {
		script, err := seo.NewScript(scriptID, schema)
		if err != nil {
			return err
		}
		p.script = script
	}
	if p.data == nil {
		p.data = map[string]interface{}{}
	}
	b.pages = append(b.pages, p)
	return nil
}

// webPage is the generic structured data for pages without a richer schema
func (b *pageBuilder) webPage(route, title, description string) seo.Schema {
	s := seo.Schema{
		"@context": "https://schema.org",
		"@type":    "WebPage",
		"name":     title,
		"url":      seo.CanonicalURL(b.id.BaseURL, route),
		"isPartOf": seo.Schema{
			"@type": "WebSite",
			"name":  b.id.Name,
			"url":   seo.CanonicalURL(b.id.BaseURL, "/"),
		},
	}
	if description != "" {
		s["description"] = description
	}
	return s
}

// buildPages lays out every route of the site
func buildPages(ctx *RenderContext) ([]*page, error) {
	site := ctx.Site
	b := &pageBuilder{
		ctx: ctx,
		id: seo.Identity{
			Name:        siteName(ctx),
			Description: ctx.Config.Site.Description,
			BaseURL:     ctx.Config.Site.BaseURL,
			Logo:        logoPath(site.Data),
		},
	}

	steps := []func() error{
		b.home,
		b.about,
		b.products,
		b.blog,
		b.clients,
		b.contact,
		b.caseStudies,
		b.investors,
		b.notFound,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return b.pages, nil
}

func (b *pageBuilder) home() error {
	d := b.ctx.Site.Data
	news := d.News
	if len(news) > newsLimit {
		news = news[:newsLimit]
	}
	return b.add(&page{
		route:       "/",
		template:    "home",
		description: b.ctx.Config.Site.Description,
		data: map[string]interface{}{
			"hero":     d.Hero,
			"stats":    d.Stats,
			"families": d.Families,
			"mission":  d.Mission,
			"services": d.Services,
			"news":     news,
		},
	}, seo.OrganizationID, seo.Organization(b.id, d.Offices))
}

func (b *pageBuilder) about() error {
	d := b.ctx.Site.Data
	const title, desc = "About Us", "A young, dynamic engineering team delivering industrial automation since 1998."
	return b.add(&page{
		route:       "/about",
		template:    "about",
		title:       title,
		description: desc,
		data: map[string]interface{}{
			"paragraphs": d.About,
			"timeline":   d.Timeline,
			"values":     d.Values,
			"directors":  d.Directors,
			"offices":    d.Offices,
		},
	}, seo.DefaultScriptID, b.webPage("/about", title, desc))
}

// products renders the full catalog and one page per category
func (b *pageBuilder) products() error {
	products := b.ctx.Site.Products
	categories := catalog.Categories(products)

	filters := append([]string{""}, categories...)
	for _, filter := range filters {
		route := productsRoute
		title := "Products & Solutions"
		if filter != "" {
			route = categoryPrefix + categorySlug(filter)
			title = filter + " | Products"
		}
		desc := "Mitsubishi Electric automation products: PLCs, HMIs, servos, inverters, robots and power distribution."

		sections := catalog.Organize(products, filter)
		var listed []*models.Product
		for _, s := range sections {
			listed = append(listed, s.Products...)
		}
		name := "Products"
		if filter != "" {
			name = filter
		}

		err := b.add(&page{
			route:       route,
			template:    "products",
			title:       title,
			description: desc,
			data: map[string]interface{}{
				"heading":     "Products & Solutions",
				"tabs":        categoryTabs(categories, filter),
				"sections":    sectionViews(sections),
				"has_results": len(sections) > 0,
				"empty_text":  noProductsMessage,
			},
		}, seo.ProductCatalogID, seo.ProductCatalog(b.id, route, name, listed))
		if err != nil {
			return err
		}
	}
	return nil
}

func categoryTabs(categories []string, selected string) []map[string]interface{} {
	tabs := []map[string]interface{}{{
		"name":   "All Products",
		"href":   productsRoute,
		"active": selected == "",
	}}
	for _, c := range categories {
		tabs = append(tabs, map[string]interface{}{
			"name":   c,
			"href":   categoryPrefix + categorySlug(c),
			"active": selected == c,
		})
	}
	return tabs
}

func sectionViews(sections []models.Section) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(sections))
	for _, s := range sections {
		products := make([]map[string]interface{}, 0, len(s.Products))
		for _, p := range s.Products {
			products = append(products, productView(p))
		}
		out = append(out, map[string]interface{}{
			"name":          s.Name,
			"is_subsection": s.IsSubsection,
			"products":      products,
		})
	}
	return out
}

func productView(p *models.Product) map[string]interface{} {
	return map[string]interface{}{
		"title":        p.Title,
		"description":  p.Description,
		"badge":        p.GroupKey(),
		"image":        p.ImageURL(),
		"full_image":   p.Image.Path,
		"url":          p.URL,
		"filename":     p.Filename,
		"fixed_height": p.Subcategory == "PLC iQR",
	}
}

func postView(p *models.Post) map[string]interface{} {
	return map[string]interface{}{
		"id":        p.ID,
		"title":     p.Title,
		"excerpt":   p.Excerpt,
		"category":  p.Category,
		"date":      p.Date,
		"read_time": p.ReadTime,
		"href":      blogRoute + "/" + p.ID,
	}
}

func (b *pageBuilder) blog() error {
	posts := b.ctx.Site.PublishedPosts()
	views := make([]map[string]interface{}, 0, len(posts))
	for _, p := range posts {
		views = append(views, postView(p))
	}

	const title = "Blog"
	const desc = "Insights, trends, and updates on industrial automation, technology, and innovation shaping the future of manufacturing."
	if err := b.add(&page{
		route:       blogRoute,
		template:    "blog",
		title:       title,
		description: desc,
		data:        map[string]interface{}{"posts": views, "intro": desc},
	}, seo.DefaultScriptID, b.webPage(blogRoute, title, desc)); err != nil {
		return err
	}

	for i, p := range posts {
		route := blogRoute + "/" + p.ID
		view := views[i]
		view["html"] = safe(p.HTML)
		err := b.add(&page{
			route:       route,
			template:    "post",
			title:       p.Title,
			description: p.Excerpt,
			data:        map[string]interface{}{"post": view},
		}, seo.ArticleID, seo.Article(b.id, route, p))
		if err != nil {
			return fmt.Errorf("post %s: %w", p.ID, err)
		}
	}
	return nil
}

func (b *pageBuilder) clients() error {
	clients := make([]map[string]interface{}, 0, len(b.ctx.Site.Clients))
	for _, c := range b.ctx.Site.Clients {
		clients = append(clients, map[string]interface{}{
			"name":  c.Name,
			"image": c.Image.Path,
		})
	}
	const title = "Our Clients"
	const desc = "Trusted by leading organizations across industries. We're proud to partner with companies that drive innovation and excellence."
	return b.add(&page{
		route:       "/clients",
		template:    "clients",
		title:       title,
		description: desc,
		data:        map[string]interface{}{"clients": clients, "intro": desc},
	}, seo.DefaultScriptID, b.webPage("/clients", title, desc))
}

func (b *pageBuilder) contact() error {
	const title = "Contact Us"
	const desc = "Have a question or want to discuss how we can help your business? We're here to assist you."
	return b.add(&page{
		route:       "/contact",
		template:    "contact",
		title:       title,
		description: desc,
		data: map[string]interface{}{
			"intro":    desc,
			"offices":  b.ctx.Site.Data.Offices,
			"endpoint": "/api/contact",
		},
	}, seo.ContactPageID, seo.ContactPage(b.id, "/contact", b.ctx.Site.Data.Offices))
}

func (b *pageBuilder) caseStudies() error {
	const title = "Case Studies"
	const desc = "Real-world success stories showcasing how our solutions drive measurable results for our clients worldwide."
	return b.add(&page{
		route:       "/case-studies",
		template:    "case-studies",
		title:       title,
		description: desc,
		data:        map[string]interface{}{"studies": b.ctx.Site.Data.CaseStudies, "intro": desc},
	}, seo.DefaultScriptID, b.webPage("/case-studies", title, desc))
}

func (b *pageBuilder) investors() error {
	d := b.ctx.Site.Data
	const title = "Investor Relations"
	const desc = "Access financial reports, corporate governance information, and insights into our business performance."
	return b.add(&page{
		route:       "/investors",
		template:    "investors",
		title:       title,
		description: desc,
		data: map[string]interface{}{
			"intro":          desc,
			"financials":     d.Financials,
			"reports":        d.Reports,
			"press_releases": d.PressReleases,
		},
	}, seo.DefaultScriptID, b.webPage("/investors", title, desc))
}

func (b *pageBuilder) notFound() error {
	return b.add(&page{
		route:       notFoundRoute,
		template:    "404",
		title:       "Page Not Found",
		description: "The page you are looking for does not exist.",
	}, "", nil)
}
