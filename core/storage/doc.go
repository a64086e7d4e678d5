// Package storage provides an abstraction layer for the object storage
// holding persisted draft snapshots.
//
// It wraps the MinIO Go client behind a small read-only interface. Draft
// snapshots are JSON blobs written by the quote editor under
// drafts/<quote-id>/; the export engine lists and fetches them as the
// fallback merge source but never writes back. The abstraction supports
// both AWS S3 and self-hosted MinIO instances.
//
// The Client interface makes storage interactions mockable for unit
// testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "quotes")
package storage
