package queue

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/salidas/internal/service"
)

// Enqueuer is the part of *asynq.Client used here.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func EnqueueCleanup(ctx context.Context, client Enqueuer, payload CleanupObjectsPayload, delay time.Duration) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeCleanupObjects, taskPayload)

	// Cleanup is advisory: a failed task is archived, not retried. The
	// orphan sweep picks up whatever it leaves behind.
	_, err = client.EnqueueContext(ctx, task, asynq.ProcessIn(delay), asynq.MaxRetry(0))
	if err != nil {
		return err
	}

	log.Printf("Cleanup scheduled: %s %d objects", payload.Bucket, len(payload.Paths))
	return nil
}

// TaskCleaner implements service.Cleaner by queueing the removal. When the
// task cannot be queued the objects are left for the orphan sweep.
type TaskCleaner struct {
	client Enqueuer
}

func NewTaskCleaner(client Enqueuer) *TaskCleaner {
	return &TaskCleaner{client: client}
}

func (c *TaskCleaner) Cleanup(ctx context.Context, bucket service.Bucket, paths []string) {
	if len(paths) == 0 {
		return
	}
	payload := CleanupObjectsPayload{Bucket: bucket, Paths: paths}
	if err := EnqueueCleanup(ctx, c.client, payload, 0); err != nil {
		slog.Warn("unable to queue storage cleanup", "bucket", bucket, "paths", len(paths), "err", err)
	}
}
