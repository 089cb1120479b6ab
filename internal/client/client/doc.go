// Package client bootstraps local persistence for the storyshare CLI:
// it wires an SQLite database, applies the embedded goose migrations, and
// hands out the repository bundle for the per-partition stores (stories
// cache, pending-submission queue, bookmarks, offline blobs, metadata).
//
// Failure to open or migrate the database is reported as
// common.ErrStorageUnavailable; everything above this layer must treat
// that as "cache unavailable" and keep working against the network.
package client
