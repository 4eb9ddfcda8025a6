// Package imagestore talks to the external object-storage service that
// hosts product images. The service is consumed as-is: uploads hand back a
// public URL plus an opaque identifier, and deletion happens by that
// identifier.
package imagestore

import (
	"context"
	"io"
)

type Upload struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Store interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*Upload, error)
	Delete(ctx context.Context, publicID string) error
}
