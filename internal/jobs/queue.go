package jobs

import "github.com/vytor/leitnerbox/internal/leitner"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueImport(profileID int64, records []leitner.Record) error
}
