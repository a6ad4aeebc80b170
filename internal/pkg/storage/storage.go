package storage

import "context"

// IBlobStorage abstracts the object store holding memory images.
type IBlobStorage interface {
	// Upload writes data under key and returns the publicly resolvable URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Download reads an object back, e.g. for derived-variant generation.
	Download(ctx context.Context, key string) ([]byte, error)
	// Delete removes a previously uploaded object. Used as compensating
	// cleanup when the record insert after an upload fails.
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
