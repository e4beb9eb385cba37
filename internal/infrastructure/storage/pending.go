package storage

import (
	"database/sql"
	"fmt"
	"strings"
)

const pendingColumns = "id, uid, summary, client, date, dest, route, miles, trip_type, trips, notes, match_note, status, created_at"

// ListPending returns pending entries filtered by status; empty status = all
func (s *Storage) ListPending(status PendingStatus) ([]PendingEntry, error) {
	query := "SELECT " + pendingColumns + " FROM pending_entries"
	var args []interface{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []PendingEntry
	for rows.Next() {
		var entry PendingEntry
		if err := scanPending(rows, &entry); err != nil {
			return nil, fmt.Errorf("failed to scan pending entry row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// GetPending retrieves a pending entry by ID
func (s *Storage) GetPending(id int64) (*PendingEntry, error) {
	var entry PendingEntry
	row := s.db.QueryRow("SELECT "+pendingColumns+" FROM pending_entries WHERE id = ?", id)
	if err := scanPending(row, &entry); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pending entry: %w", err)
	}
	return &entry, nil
}

// PendingUIDs returns the set of non-empty calendar UIDs across all
// historical pending rows, regardless of status. Used by reconciliation
// to suppress re-import of already-seen events.
func (s *Storage) PendingUIDs() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT uid FROM pending_entries WHERE uid != ''")
	if err != nil {
		return nil, fmt.Errorf("failed to query pending uids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	uids := make(map[string]bool)
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("failed to scan pending uid: %w", err)
		}
		uids[uid] = true
	}

	return uids, rows.Err()
}

// InsertPendingBatch inserts all entries in one transaction. Any failure
// rolls back the entire batch so a reconciliation run is all-or-nothing.
func (s *Storage) InsertPendingBatch(entries []PendingEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO pending_entries
		(uid, summary, client, date, dest, route, miles, trip_type, trips, notes, match_note, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, entry := range entries {
		if entry.Status == "" {
			entry.Status = StatusPending
		}
		if entry.TripType == "" {
			entry.TripType = TripTypeRound
		}
		if entry.Trips <= 0 {
			entry.Trips = 1
		}

		if _, err := stmt.Exec(
			entry.UID, entry.Summary, entry.Client, entry.Date, entry.Dest, entry.Route,
			entry.Miles, entry.TripType, entry.Trips, entry.Notes, entry.MatchNote, string(entry.Status),
		); err != nil {
			return fmt.Errorf("failed to insert pending entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pending batch: %w", err)
	}

	return nil
}

// UpdatePending applies a partial update to a still-pending entry
func (s *Storage) UpdatePending(id int64, update JobUpdate) (*PendingEntry, error) {
	if update.IsEmpty() {
		return nil, ErrNoFields
	}

	entry, err := s.GetPending(id)
	if err != nil {
		return nil, err
	}
	if entry.Status != StatusPending {
		return nil, ErrNotPending
	}

	sets, vals := buildUpdateClauses(update)
	vals = append(vals, id)

	query := "UPDATE pending_entries SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.Exec(query, vals...); err != nil {
		return nil, fmt.Errorf("failed to update pending entry: %w", err)
	}

	return s.GetPending(id)
}

// ApprovePending atomically copies a pending entry into the ledger and
// marks it approved. Approving a non-pending entry or one with zero miles
// is a precondition violation, not a no-op.
func (s *Storage) ApprovePending(id int64) (*Job, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	entry, err := getPendingTx(tx, id)
	if err != nil {
		return nil, err
	}

	jobID, err := approveTx(tx, entry)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}

	return s.GetJob(jobID)
}

// DismissPending marks a pending entry dismissed; no ledger side effect.
func (s *Storage) DismissPending(id int64) error {
	result, err := s.db.Exec(
		"UPDATE pending_entries SET status = ? WHERE id = ? AND status = ?",
		string(StatusDismissed), id, string(StatusPending),
	)
	if err != nil {
		return fmt.Errorf("failed to dismiss pending entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check dismiss result: %w", err)
	}
	if affected == 0 {
		if _, err := s.GetPending(id); err != nil {
			return err
		}
		return ErrNotPending
	}

	return nil
}

// ApproveAll approves every pending entry with miles > 0 and date not past
// today, inside a single transaction. A failure on any entry aborts the
// whole batch.
func (s *Storage) ApproveAll(today string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query(
		"SELECT "+pendingColumns+" FROM pending_entries WHERE status = ? AND miles > 0 AND date <= ? ORDER BY id",
		string(StatusPending), today,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to query approvable entries: %w", err)
	}

	var entries []PendingEntry
	for rows.Next() {
		var entry PendingEntry
		if err := scanPending(rows, &entry); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("failed to scan pending entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, err
	}
	_ = rows.Close()

	for i := range entries {
		if _, err := approveTx(tx, &entries[i]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit bulk approval: %w", err)
	}

	return len(entries), nil
}

// DismissAll dismisses every currently-pending entry unconditionally.
func (s *Storage) DismissAll() (int, error) {
	result, err := s.db.Exec(
		"UPDATE pending_entries SET status = ? WHERE status = ?",
		string(StatusDismissed), string(StatusPending),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to dismiss pending entries: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count dismissed entries: %w", err)
	}

	return int(affected), nil
}

func getPendingTx(tx *sql.Tx, id int64) (*PendingEntry, error) {
	var entry PendingEntry
	row := tx.QueryRow("SELECT "+pendingColumns+" FROM pending_entries WHERE id = ?", id)
	if err := scanPending(row, &entry); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pending entry: %w", err)
	}
	return &entry, nil
}

// approveTx performs the single-entry approval transition inside an open
// transaction: precondition checks, ledger copy, status flip.
func approveTx(tx *sql.Tx, entry *PendingEntry) (int64, error) {
	if entry.Status != StatusPending {
		return 0, ErrNotPending
	}
	if entry.Miles <= 0 {
		return 0, ErrZeroMiles
	}

	result, err := tx.Exec(`
		INSERT INTO jobs (client, date, dest, route, miles, trip_type, trips, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.Client, entry.Date, entry.Dest, entry.Route, entry.Miles, entry.TripType, entry.Trips, entry.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to create job from pending entry: %w", err)
	}

	jobID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get job id: %w", err)
	}

	if _, err := tx.Exec(
		"UPDATE pending_entries SET status = ? WHERE id = ?",
		string(StatusApproved), entry.ID,
	); err != nil {
		return 0, fmt.Errorf("failed to mark entry approved: %w", err)
	}

	return jobID, nil
}

func scanPending(row scanner, entry *PendingEntry) error {
	var status string
	err := row.Scan(
		&entry.ID, &entry.UID, &entry.Summary, &entry.Client, &entry.Date,
		&entry.Dest, &entry.Route, &entry.Miles, &entry.TripType, &entry.Trips,
		&entry.Notes, &entry.MatchNote, &status, &entry.CreatedAt,
	)
	entry.Status = PendingStatus(status)
	return err
}
