package testhelpers

import (
	"path/filepath"
	"runtime"
)

// RepoRoot returns the absolute path to the repository root.
func RepoRoot() string {
	// this file lives at <repo>/test/helpers.go
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(file))
}

// ExampleSite builds a path under examples/site/...
func ExampleSite(parts ...string) string {
	base := []string{RepoRoot(), "examples", "site"}
	return filepath.Join(append(base, parts...)...)
}
