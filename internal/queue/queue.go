package queue

import (
	"github.com/maheshrc27/salidas/internal/service"
)

// Queue runs storage cleanup tasks handed over by the services.
type Queue struct {
	storage service.ObjectStorage
}

func NewQueue(storage service.ObjectStorage) *Queue {
	return &Queue{
		storage: storage,
	}
}

const TaskTypeCleanupObjects = "storage:cleanup"

type CleanupObjectsPayload struct {
	Bucket service.Bucket `json:"bucket"`
	Paths  []string       `json:"paths"`
}
