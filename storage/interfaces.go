package storage

import (
	"context"

	"ghana-rentals/models"
)

// RawRecordWriter persists unprocessed scraped records locally.
type RawRecordWriter interface {
	WriteRaw(records []*models.RawRecord) error
	Close() error
}

// DatasetStore is the append-only snapshot store. Store returns an opaque
// handle to the written snapshot; LoadLatestNormalized returns the most
// recent normalized snapshot for a namespace, or nil when none exists.
type DatasetStore interface {
	StoreRaw(ctx context.Context, records []*models.RawRecord, namespace string) (string, error)
	StoreNormalized(ctx context.Context, records []*models.NormalizedRecord, namespace string) (string, error)
	LoadLatestNormalized(ctx context.Context, namespace string) ([]*models.NormalizedRecord, error)
	Close() error
}
