package ports

import "context"

// BlobStore stocke des valeurs opaques par clé (équivalent du localStorage).
// Get renvoie ErrNotFound si la clé est absente.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
