package storage

import "errors"

// Precondition errors surfaced by workflow operations. Handlers map these
// to client-facing error responses instead of retrying.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotPending indicates an approve/dismiss/update on an entry that
	// already reached a terminal status.
	ErrNotPending = errors.New("entry is not pending")

	// ErrZeroMiles indicates an approval attempt with miles <= 0.
	ErrZeroMiles = errors.New("miles must be greater than zero")

	// ErrNoFields indicates a partial update carrying no recognized fields.
	ErrNoFields = errors.New("nothing to update")
)

// Repository defines the complete storage interface.
// This interface allows swapping implementations and makes testing with
// the in-memory mock straightforward.
type Repository interface {
	JobRepository
	RouteRepository
	PendingRepository
	StatsRepository
	Close() error
}

// JobRepository handles ledger entry operations
type JobRepository interface {
	// ListJobs returns all jobs ordered by date DESC, id DESC
	ListJobs() ([]Job, error)

	// GetJob retrieves a job by ID; ErrNotFound if absent
	GetJob(id int64) (*Job, error)

	// CreateJob inserts a job and returns it with ID and timestamp set
	CreateJob(job Job) (*Job, error)

	// UpdateJob applies a partial update; ErrNoFields if update is empty,
	// ErrNotFound if the job does not exist
	UpdateJob(id int64, update JobUpdate) (*Job, error)

	// DeleteJob removes a job; ErrNotFound if absent
	DeleteJob(id int64) error
}

// RouteRepository handles saved route templates
type RouteRepository interface {
	// ListRoutes returns all saved routes ordered by client, dest
	ListRoutes() ([]SavedRoute, error)

	// UpsertRoute inserts or replaces a route by key
	UpsertRoute(route SavedRoute) error

	// DeleteRoute removes a route by key
	DeleteRoute(key string) error
}

// PendingRepository handles pending calendar entries and their workflow
type PendingRepository interface {
	// ListPending returns entries filtered by status; empty status = all
	ListPending(status PendingStatus) ([]PendingEntry, error)

	// GetPending retrieves an entry by ID; ErrNotFound if absent
	GetPending(id int64) (*PendingEntry, error)

	// PendingUIDs returns the set of non-empty calendar UIDs across all
	// historical pending rows regardless of status
	PendingUIDs() (map[string]bool, error)

	// InsertPendingBatch inserts all entries in a single transaction;
	// a failure rolls back every insert
	InsertPendingBatch(entries []PendingEntry) error

	// UpdatePending applies a partial update to a still-pending entry
	UpdatePending(id int64, update JobUpdate) (*PendingEntry, error)

	// ApprovePending copies a pending entry into the ledger and marks it
	// approved, atomically. ErrNotPending / ErrZeroMiles on violation.
	ApprovePending(id int64) (*Job, error)

	// DismissPending marks a pending entry dismissed. ErrNotPending if the
	// entry already reached a terminal status.
	DismissPending(id int64) error

	// ApproveAll approves every pending entry with miles > 0 and date not
	// past today, in one transaction. Returns the number approved.
	ApproveAll(today string) (int, error)

	// DismissAll dismisses every pending entry unconditionally and
	// returns the number affected.
	DismissAll() (int, error)
}

// StatsRepository handles reporting queries
type StatsRepository interface {
	// GetStats returns aggregate statistics, optionally filtered to a
	// single year ("" = all time)
	GetStats(year string) (*Stats, error)
}
