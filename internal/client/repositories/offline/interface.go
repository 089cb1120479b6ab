package offline

import "context"

// Repository covers the two generic offline partitions: offline_assets
// (fetched resources keyed by URL) and offline_data (ad-hoc blobs keyed by
// name). Both are flat key-value collections with upsert semantics.
type Repository interface {
	// SaveAsset stores a fetched resource under its URL.
	SaveAsset(ctx context.Context, url string, data []byte) error

	// GetAsset returns a stored resource, or common.ErrNotFound.
	GetAsset(ctx context.Context, url string) ([]byte, error)

	// SaveData stores an ad-hoc blob under a key.
	SaveData(ctx context.Context, key string, data []byte) error

	// GetData returns a stored blob, or nil when the key is absent.
	GetData(ctx context.Context, key string) ([]byte, error)
}
