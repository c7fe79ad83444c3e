package service

import (
	"context"
	"log/slog"
)

// Cleaner removes stored files whose rows are already gone. Cleanup is
// advisory: it never reports failure to the caller.
type Cleaner interface {
	Cleanup(ctx context.Context, bucket Bucket, paths []string)
}

type StorageCleaner struct {
	storage ObjectStorage
}

func NewStorageCleaner(storage ObjectStorage) *StorageCleaner {
	return &StorageCleaner{storage: storage}
}

func (c *StorageCleaner) Cleanup(ctx context.Context, bucket Bucket, paths []string) {
	if len(paths) == 0 {
		return
	}
	if err := c.storage.Remove(ctx, bucket, paths); err != nil {
		slog.Warn("storage cleanup failed", "bucket", bucket, "paths", len(paths), "err", err)
	}
}

// cleanupURLs maps public URLs back to object paths and hands the ones that
// belong to bucket to the cleaner.
func cleanupURLs(ctx context.Context, storage ObjectStorage, cleaner Cleaner, bucket Bucket, urls []string) {
	paths := make([]string, 0, len(urls))
	for _, u := range urls {
		if p, ok := storage.PathFromURL(bucket, u); ok {
			paths = append(paths, p)
		}
	}
	cleaner.Cleanup(ctx, bucket, paths)
}
