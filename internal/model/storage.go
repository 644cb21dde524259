package model

import (
	"context"
	"io"
)

// FileStorage stores uploaded file payloads under opaque keys.
type FileStorage interface {
	Save(ctx context.Context, key string, reader io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
