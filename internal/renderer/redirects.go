package renderer

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// generateRedirects reads the [redirects] table and emits a stub page per
// source path. Sources may carry a #fragment; those entries only feed the
// stub's fragment map, so a base path needs a fragment-less mapping to be
// emitted. Existing pages are never overwritten.
func (r *HtmlRenderer) generateRedirects(ctx *RenderContext, tpls *templateSet) (int, error) {
	type group struct {
		baseTarget string
		fragments  map[string]string // fragment (with leading #) -> target
	}
	groups := map[string]*group{}

	for src, dst := range ctx.Config.Redirects {
		src = strings.TrimPrefix(strings.TrimSpace(src), "/")
		base, frag := src, ""
		if i := strings.Index(src, "#"); i >= 0 {
			base, frag = src[:i], src[i:]
		}
		g := groups[base]
		if g == nil {
			g = &group{fragments: map[string]string{}}
			groups[base] = g
		}
		if frag == "" {
			g.baseTarget = dst
		} else {
			g.fragments[frag] = dst
		}
	}

	bases := make([]string, 0, len(groups))
	for base := range groups {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	written := 0
	for _, srcBase := range bases {
		g := groups[srcBase]
		if g.baseTarget == "" || strings.Contains(srcBase, "..") {
			continue
		}
		outPath := filepath.Join(ctx.DestDir, filepath.FromSlash(redirectFile(srcBase)))
		if _, err := os.Stat(outPath); err == nil {
			r.log.WithField("source", "/"+srcBase).Warn("Redirect skipped; a page already exists at this path")
			continue
		}
		fragJSON, err := json.Marshal(g.fragments)
		if err != nil {
			return written, err
		}
		out, err := tpls.redirect.Exec(map[string]interface{}{
			"url":          g.baseTarget,
			"fragment_map": safe(string(fragJSON)),
		})
		if err != nil {
			return written, fmt.Errorf("redirect /%s: %w", srcBase, err)
		}
		if err := writeOutput(ctx.DestDir, redirectFile(srcBase), []byte(out)); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// redirectFile keeps sources with an extension as files and turns
// extensionless routes into directory indexes
func redirectFile(src string) string {
	src = strings.Trim(src, "/")
	if path.Ext(src) != "" {
		return src
	}
	if src == "" {
		return "index.html"
	}
	return path.Join(src, "index.html")
}
