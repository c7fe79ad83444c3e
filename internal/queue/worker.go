package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

func (j *Queue) HandleCleanupTask(ctx context.Context, task *asynq.Task) error {
	var payload CleanupObjectsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	return j.RemoveObjects(ctx, payload)
}

// RemoveObjects deletes the payload's objects. A storage failure is returned
// so asynq archives the task.
func (j *Queue) RemoveObjects(ctx context.Context, payload CleanupObjectsPayload) error {
	if len(payload.Paths) == 0 {
		return nil
	}

	if err := j.storage.Remove(ctx, payload.Bucket, payload.Paths); err != nil {
		log.Printf("Error removing %d objects from %s: %v", len(payload.Paths), payload.Bucket, err)
		return err
	}

	log.Printf("Removed %d objects from %s", len(payload.Paths), payload.Bucket)
	return nil
}
