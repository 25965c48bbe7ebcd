package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSArchive uploads batch artifacts to a Cloud Storage bucket under
// <prefix>/<date>/.
type GCSArchive struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSArchive(ctx context.Context, bucket, prefix string) (*GCSArchive, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSArchive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

func (a *GCSArchive) Close() error {
	return a.client.Close()
}

// UploadBatch copies every artifact of the batch into the bucket and
// returns the object names written.
func (a *GCSArchive) UploadBatch(ctx context.Context, batch *Batch) ([]string, error) {
	paths := batch.ArtifactPaths()
	if len(paths) == 0 {
		return nil, fmt.Errorf("batch %s has no artifacts", batch.Date())
	}

	var uploaded []string
	for _, path := range paths {
		rel, err := filepath.Rel(batch.Dir(), path)
		if err != nil {
			return uploaded, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		object := a.objectName(batch.Date(), filepath.ToSlash(rel))
		if err := a.uploadFile(ctx, path, object); err != nil {
			return uploaded, err
		}
		uploaded = append(uploaded, object)
	}
	return uploaded, nil
}

// ListBatches returns the archived batch dates, oldest first.
func (a *GCSArchive) ListBatches(ctx context.Context) ([]string, error) {
	prefix := ""
	if a.prefix != "" {
		prefix = a.prefix + "/"
	}

	query := &storage.Query{Prefix: prefix, Delimiter: "/"}
	it := a.client.Bucket(a.bucket).Objects(ctx, query)

	var dates []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if attrs.Prefix == "" {
			continue
		}
		date := strings.Trim(strings.TrimPrefix(attrs.Prefix, prefix), "/")
		if isDateName(date) {
			dates = append(dates, date)
		}
	}
	return dates, nil
}

func (a *GCSArchive) objectName(date, rel string) string {
	if a.prefix == "" {
		return date + "/" + rel
	}
	return a.prefix + "/" + date + "/" + rel
}

func (a *GCSArchive) uploadFile(ctx context.Context, localPath, object string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer func() { _ = f.Close() }()

	w := a.client.Bucket(a.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", object, err)
	}
	return nil
}
