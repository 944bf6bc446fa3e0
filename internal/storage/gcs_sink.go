package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// BucketSink writes collections as JSON objects under a Cloud Storage prefix.
type BucketSink struct {
	client *storage.Client
	bucket string
	prefix string
}

// ParseBucketURI splits gs://bucket/prefix. ok is false for anything else.
func ParseBucketURI(uri string) (bucket, prefix string, ok bool) {
	rest, found := strings.CutPrefix(uri, "gs://")
	if !found || rest == "" {
		return "", "", false
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", false
	}
	return bucket, strings.Trim(prefix, "/"), true
}

// NewBucketSink opens a storage client. Close must be called when done.
func NewBucketSink(ctx context.Context, uri string, opts ...option.ClientOption) (*BucketSink, error) {
	bucket, prefix, ok := ParseBucketURI(uri)
	if !ok {
		return nil, fmt.Errorf("invalid bucket uri %q", uri)
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &BucketSink{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *BucketSink) objectName(name string) string {
	return path.Join(s.prefix, name+".json")
}

func (s *BucketSink) Location(name string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, s.objectName(name))
}

func (s *BucketSink) Write(ctx context.Context, name string, data interface{}) error {
	w := s.client.Bucket(s.bucket).Object(s.objectName(name)).NewWriter(ctx)
	w.ContentType = "application/json"

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		w.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload %s: %w", s.Location(name), err)
	}
	return nil
}

func (s *BucketSink) Close() error {
	return s.client.Close()
}
