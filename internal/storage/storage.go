// Package storage lays out the per-date batch directory and archives
// finished batches to a bucket.
package storage

import "context"

// Archive persists a finished batch somewhere durable.
type Archive interface {
	UploadBatch(ctx context.Context, batch *Batch) ([]string, error)
}
