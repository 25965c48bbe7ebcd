// Package uploader publishes finished daily videos to YouTube.
package uploader

import "context"

type UploadRequest struct {
	FilePath    string
	Title       string
	Description string
	Tags        []string
	Privacy     string
}

type UploadResponse struct {
	ID  string
	URL string
}

type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error)
}
