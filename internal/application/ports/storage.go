package ports

import "context"

// FileStore abstracts the object storage bucket holding project files.
type FileStore interface {
	// Upload stores data under path with the given content type.
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	// Remove deletes the object at path.
	Remove(ctx context.Context, path string) error
	// PublicURL returns the publicly reachable URL for path.
	PublicURL(path string) string
}
