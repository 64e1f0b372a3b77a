// internal/storage/archive/interface.go
package archive

import "context"

// Storage is a flat key/value blob store used for cached provider payloads.
// Paths are slash separated. Read returns core.ErrCacheMiss for missing paths.
type Storage interface {
	Write(ctx context.Context, path string, data []byte) error
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths under the prefix, relative to the store root
	List(ctx context.Context, prefix string) ([]string, error)

	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}
