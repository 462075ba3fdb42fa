// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface used to fetch and
// publish game-data objects (the marketable item stack-size table). The
// abstraction supports both AWS S3 and self-hosted MinIO instances, and makes
// storage interactions mockable for unit testing (see core/storage/mocks).
package storage
