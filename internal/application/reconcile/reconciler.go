// Package reconcile turns calendar feed events into pending ledger drafts.
//
// A run fetches the feed, drops cancelled events, dedupes against both the
// event UID (all historical pending rows) and the derived date+client key
// (approved ledger entries), resolves client names through the matcher,
// and inserts the surviving drafts in one all-or-nothing batch.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hms-dev/mileage-backend/internal/domain/feed"
	"github.com/hms-dev/mileage-backend/internal/domain/matcher"
	"github.com/hms-dev/mileage-backend/internal/domain/registry"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/feedclient"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

// genericRoute is the placeholder route for drafts without profile data.
const genericRoute = "TBD"

// Result summarizes one reconciliation run.
type Result struct {
	Total   int    `json:"total"`
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

// Store is the storage surface a reconciliation run needs.
type Store interface {
	ListJobs() ([]storage.Job, error)
	ListRoutes() ([]storage.SavedRoute, error)
	PendingUIDs() (map[string]bool, error)
	InsertPendingBatch(entries []storage.PendingEntry) error
}

// Reconciler runs the calendar-to-ledger reconciliation pipeline.
type Reconciler struct {
	store   Store
	fetcher feedclient.Fetcher
	matcher *matcher.Matcher
	feedURL string
	logger  *slog.Logger
}

// NewReconciler creates a reconciler for the given feed URL.
func NewReconciler(store Store, fetcher feedclient.Fetcher, feedURL string, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		store:   store,
		fetcher: fetcher,
		matcher: matcher.NewMatcher(matcher.DefaultConfig()),
		feedURL: feedURL,
		logger:  logger,
	}
}

// Run executes one reconciliation pass. Failures are reported in the
// result, never panicked or retried; the scheduler re-runs later.
func (r *Reconciler) Run(ctx context.Context) Result {
	data, err := r.fetcher.Fetch(ctx, r.feedURL)
	if err != nil {
		r.logger.Warn("calendar fetch failed", "error", err)
		return Result{Error: fmt.Sprintf("calendar fetch failed: %v", err)}
	}

	events := feed.Parse(data)

	// Registry and dedup state are snapshotted once; the run sees a
	// consistent view even if the ledger changes underneath it.
	jobs, err := r.store.ListJobs()
	if err != nil {
		return Result{Error: fmt.Sprintf("failed to load ledger: %v", err)}
	}
	routes, err := r.store.ListRoutes()
	if err != nil {
		return Result{Error: fmt.Sprintf("failed to load saved routes: %v", err)}
	}
	seenUIDs, err := r.store.PendingUIDs()
	if err != nil {
		return Result{Error: fmt.Sprintf("failed to load pending entries: %v", err)}
	}

	snapshot := registry.BuildSnapshot(jobs, routes)

	ledgerKeys := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		ledgerKeys[dateClientKey(job.Date, job.Client)] = true
	}

	var result Result
	var drafts []storage.PendingEntry

	for _, event := range events {
		if isCancelled(event) {
			continue
		}
		result.Total++

		if event.UID != "" && seenUIDs[event.UID] {
			result.Skipped++
			continue
		}

		rawName, notes := splitSummary(event.Summary)

		client, matched := r.matcher.Match(rawName, snapshot.KnownClients())
		if !matched {
			client = rawName
		}

		if ledgerKeys[dateClientKey(event.Date, client)] {
			result.Skipped++
			continue
		}

		drafts = append(drafts, buildDraft(event, rawName, notes, client, matched, snapshot))
	}

	if err := r.store.InsertPendingBatch(drafts); err != nil {
		r.logger.Error("pending batch insert failed", "count", len(drafts), "error", err)
		return Result{Total: result.Total, Skipped: result.Skipped, Error: fmt.Sprintf("failed to save pending entries: %v", err)}
	}

	result.Added = len(drafts)
	r.logger.Info("reconciliation completed",
		"events", len(events),
		"total", result.Total,
		"added", result.Added,
		"skipped", result.Skipped)

	return result
}

// buildDraft assembles the pending entry for one surviving event.
func buildDraft(event feed.CalendarEvent, rawName, notes, client string, matched bool, snapshot *registry.Snapshot) storage.PendingEntry {
	entry := storage.PendingEntry{
		UID:      event.UID,
		Summary:  event.Summary,
		Client:   client,
		Date:     event.Date,
		Route:    genericRoute,
		TripType: storage.TripTypeRound,
		Trips:    1,
		Notes:    notes,
		Status:   storage.StatusPending,
	}

	if !matched {
		entry.MatchNote = fmt.Sprintf("No match for %q", rawName)
		return entry
	}

	profile, ok := snapshot.Profile(client)
	if !ok {
		entry.MatchNote = fmt.Sprintf("Matched %q, no mileage history", client)
		return entry
	}

	entry.Miles = profile.AvgMiles
	entry.Dest = profile.Dest
	entry.Route = profile.Route
	entry.TripType = profile.TripType
	entry.MatchNote = fmt.Sprintf("Matched %q (avg %.1f mi)", client, profile.AvgMiles)
	return entry
}

// splitSummary extracts the raw client name and the trailing notes. The
// name is everything before the first " - " or " – " separator; without a
// separator the whole summary is the name and notes are empty.
func splitSummary(summary string) (rawName, notes string) {
	sepIdx := -1
	sepLen := 0
	for _, sep := range []string{" - ", " – "} {
		if idx := strings.Index(summary, sep); idx >= 0 && (sepIdx < 0 || idx < sepIdx) {
			sepIdx = idx
			sepLen = len(sep)
		}
	}

	if sepIdx < 0 {
		return strings.TrimSpace(summary), ""
	}
	return strings.TrimSpace(summary[:sepIdx]), strings.TrimSpace(summary[sepIdx+sepLen:])
}

// isCancelled filters events that were cancelled upstream, either via the
// STATUS property or by convention in the summary text.
func isCancelled(event feed.CalendarEvent) bool {
	if strings.EqualFold(event.Status, "CANCELLED") {
		return true
	}
	return strings.Contains(strings.ToLower(event.Summary), "cancel")
}

func dateClientKey(date, client string) string {
	return date + "|" + client
}
