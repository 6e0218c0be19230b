package renderer

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/dcsystems/dcsite/internal/seo"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// writeCrawlerFiles writes sitemap.xml, robots.txt and the optional CNAME
func writeCrawlerFiles(ctx *RenderContext, routes []string) (int, error) {
	base := ctx.Config.Site.BaseURL
	lastMod := ctx.BuildTime.UTC().Format("2006-01-02")

	set := urlSet{XMLNS: sitemapNS}
	for _, route := range routes {
		set.URLs = append(set.URLs, sitemapURL{Loc: seo.CanonicalURL(base, route), LastMod: lastMod})
	}
	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	if err := writeOutput(ctx.DestDir, "sitemap.xml", append([]byte(xml.Header), data...)); err != nil {
		return 0, fmt.Errorf("failed to write sitemap: %w", err)
	}

	robots := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", seo.CanonicalURL(base, "/sitemap.xml"))
	if err := writeOutput(ctx.DestDir, "robots.txt", []byte(robots)); err != nil {
		return 1, fmt.Errorf("failed to write robots.txt: %w", err)
	}

	cname := strings.TrimSpace(ctx.Config.GetString("output.cname", ""))
	if cname == "" {
		return 2, nil
	}
	if err := writeOutput(ctx.DestDir, "CNAME", []byte(cname+"\n")); err != nil {
		return 2, fmt.Errorf("failed to write CNAME: %w", err)
	}
	return 3, nil
}
