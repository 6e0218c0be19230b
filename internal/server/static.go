package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// staticHandler serves the built site from root. Routes map to their
// index.html; anything missing gets 404.html with status 404.
func staticHandler(root string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		target, ok := resolve(root, r.URL.Path)
		if !ok {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
		if file := existingFile(target); file != "" {
			http.ServeFile(w, r, file)
			return
		}
		notFound(w, r, root)
	})
}

// resolve maps a URL path into root, refusing anything that escapes it
func resolve(root, urlPath string) (string, bool) {
	if strings.Contains(urlPath, "\x00") {
		return "", false
	}
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == ".." {
			return "", false
		}
	}
	clean := path.Clean("/" + urlPath)
	target := filepath.Join(root, filepath.FromSlash(clean))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}

// existingFile returns target, or target/index.html for a directory, when
// it is a regular file
func existingFile(target string) string {
	fi, err := os.Stat(target)
	if err != nil {
		return ""
	}
	if !fi.IsDir() {
		return target
	}
	index := filepath.Join(target, "index.html")
	if fi, err := os.Stat(index); err == nil && !fi.IsDir() {
		return index
	}
	return ""
}

func notFound(w http.ResponseWriter, r *http.Request, root string) {
	page, err := os.ReadFile(filepath.Join(root, "404.html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if r.Method != http.MethodHead {
		_, _ = w.Write(page)
	}
}
