package domain

import "time"

// Source is a named grouping of documents. Callers choose the
// SourceID (e.g. a project name or a directory path); eywa does not
// discover or crawl sources on its own.
type Source struct {
	// ID is the caller-chosen identifier.
	ID string

	// DisplayName is a human-readable label, defaults to ID.
	DisplayName string

	// DocCount is the number of documents currently stored for this
	// source.
	DocCount int

	// ChunkCount is the number of chunks currently indexed for this
	// source.
	ChunkCount int

	// CreatedAt is when the source was first seen.
	CreatedAt time.Time

	// UpdatedAt is when the source's counters last changed.
	UpdatedAt time.Time
}

// JobStatus is the lifecycle state of an async ingest Job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusDone      JobStatus = "done"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job tracks the progress of an asynchronous ingest run queued via
// the embedded API's Queue method.
type Job struct {
	ID       string
	SourceID string
	Status   JobStatus

	// Total is the number of documents submitted with this job.
	Total int
	// Completed is the number of documents successfully committed.
	Completed int
	// Failed is the number of documents that errored out.
	Failed int

	// CurrentDoc is the URI of the document currently being processed,
	// for progress reporting while Status is JobStatusRunning.
	CurrentDoc string

	// Error holds the first fatal error encountered, if Status is
	// JobStatusFailed.
	Error string

	StartedAt  time.Time
	FinishedAt time.Time
}

// DoneState reports whether the job has reached a terminal state.
func (j Job) DoneState() bool {
	return j.Status == JobStatusDone || j.Status == JobStatusFailed || j.Status == JobStatusCancelled
}

// InconsistentDoc records a document that committed to some but not
// all of the content/vector/lexical stores, and whose best-effort
// rollback also failed, leaving the stores out of sync for that
// document until an operator intervenes.
type InconsistentDoc struct {
	DocID      string
	SourceID   string
	URI        string
	// Step names the commit step that failed: "vector_upsert" or
	// "lexical_index".
	Step       string
	Error      string
	OccurredAt time.Time
}
