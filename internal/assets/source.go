// Package assets imports the image tree that drives the product catalog
// and the client logo grid, from a local directory or an S3 bucket.
package assets

import (
	"context"
	"errors"
	"path"
	"strings"
)

// ErrNotFound is returned by Source.Read when the key does not exist
var ErrNotFound = errors.New("asset not found")

// Object is one file listed by a source
type Object struct {
	Key  string // slash separated, relative to the source root
	Size int64
}

// Source lists and reads files below an assets root
type Source interface {
	List(ctx context.Context) ([]Object, error)
	Read(ctx context.Context, key string) ([]byte, error)
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".svg":  true,
}

// rasterExts are the formats the thumbnailer can decode
var rasterExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// IsImage reports whether key has one of the imported image extensions
func IsImage(key string) bool {
	return imageExts[strings.ToLower(path.Ext(key))]
}

// IsRaster reports whether key can be decoded for thumbnailing
func IsRaster(key string) bool {
	return rasterExts[strings.ToLower(path.Ext(key))]
}

func cleanKey(key string) string {
	key = strings.ReplaceAll(key, "\\", "/")
	return strings.TrimPrefix(path.Clean("/"+key), "/")
}
