package assets

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dcsystems/dcsite/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Source reads assets from a bucket prefix of an S3 compatible store
type S3Source struct {
	api    *minio.Client
	bucket string
	prefix string
}

// NewS3Source connects using static credentials from config
func NewS3Source(cfg config.S3Config) (*S3Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("assets.s3.bucket is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Source{api: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

// List returns every object below the prefix, keyed relative to it
func (s *S3Source) List(ctx context.Context) ([]Object, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}

	var objects []Object
	for obj := range s.api.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", s.bucket, obj.Err)
		}
		// Skip folder markers
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		objects = append(objects, Object{
			Key:  strings.TrimPrefix(obj.Key, s.prefix),
			Size: obj.Size,
		})
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// Read downloads one object into memory
func (s *S3Source) Read(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.api.GetObject(ctx, s.bucket, s.prefix+cleanKey(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrap(key, err)
	}
	return data, nil
}

func (s *S3Source) wrap(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return fmt.Errorf("failed to get object %s: %w", key, err)
}
