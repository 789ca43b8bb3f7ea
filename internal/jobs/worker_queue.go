package jobs

import (
	"github.com/vytor/leitnerbox/internal/leitner"
	"github.com/vytor/leitnerbox/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool *worker.Pool
	importer   worker.CardImporter
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool, importer worker.CardImporter) JobQueue {
	return &WorkerQueue{
		importPool: importPool,
		importer:   importer,
	}
}

func (q *WorkerQueue) EnqueueImport(profileID int64, records []leitner.Record) error {
	return q.importPool.Submit(&worker.ImportCardsJob{
		Importer:  q.importer,
		ProfileID: profileID,
		Records:   records,
	})
}
