package storage

import (
	"database/sql"
	"fmt"
	"strings"
)

const jobColumns = "id, client, date, dest, route, miles, trip_type, trips, notes, created_at"

// ListJobs returns all jobs ordered by date DESC, id DESC
func (s *Storage) ListJobs() ([]Job, error) {
	rows, err := s.db.Query("SELECT " + jobColumns + " FROM jobs ORDER BY date DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var jobs []Job
	for rows.Next() {
		var job Job
		if err := scanJob(rows, &job); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// GetJob retrieves a job by ID
func (s *Storage) GetJob(id int64) (*Job, error) {
	var job Job
	row := s.db.QueryRow("SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	if err := scanJob(row, &job); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// CreateJob inserts a job and returns the stored row
func (s *Storage) CreateJob(job Job) (*Job, error) {
	if job.TripType == "" {
		job.TripType = TripTypeRound
	}
	if job.Trips <= 0 {
		job.Trips = 1
	}

	result, err := s.db.Exec(`
		INSERT INTO jobs (client, date, dest, route, miles, trip_type, trips, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, job.Client, job.Date, job.Dest, job.Route, job.Miles, job.TripType, job.Trips, job.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get job id: %w", err)
	}

	return s.GetJob(id)
}

// UpdateJob applies a partial update to a job
func (s *Storage) UpdateJob(id int64, update JobUpdate) (*Job, error) {
	if update.IsEmpty() {
		return nil, ErrNoFields
	}

	if _, err := s.GetJob(id); err != nil {
		return nil, err
	}

	sets, vals := buildUpdateClauses(update)
	vals = append(vals, id)

	query := "UPDATE jobs SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.Exec(query, vals...); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	return s.GetJob(id)
}

// DeleteJob removes a job by ID
func (s *Storage) DeleteJob(id int64) error {
	result, err := s.db.Exec("DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row scanner, job *Job) error {
	return row.Scan(
		&job.ID, &job.Client, &job.Date, &job.Dest, &job.Route,
		&job.Miles, &job.TripType, &job.Trips, &job.Notes, &job.CreatedAt,
	)
}

// buildUpdateClauses translates the non-nil fields of a partial update into
// SET clauses. The column set doubles as the recognized-field allowlist.
func buildUpdateClauses(update JobUpdate) ([]string, []interface{}) {
	var sets []string
	var vals []interface{}

	if update.Client != nil {
		sets = append(sets, "client = ?")
		vals = append(vals, *update.Client)
	}
	if update.Date != nil {
		sets = append(sets, "date = ?")
		vals = append(vals, *update.Date)
	}
	if update.Dest != nil {
		sets = append(sets, "dest = ?")
		vals = append(vals, *update.Dest)
	}
	if update.Route != nil {
		sets = append(sets, "route = ?")
		vals = append(vals, *update.Route)
	}
	if update.Miles != nil {
		sets = append(sets, "miles = ?")
		vals = append(vals, *update.Miles)
	}
	if update.TripType != nil {
		sets = append(sets, "trip_type = ?")
		vals = append(vals, *update.TripType)
	}
	if update.Trips != nil {
		sets = append(sets, "trips = ?")
		vals = append(vals, *update.Trips)
	}
	if update.Notes != nil {
		sets = append(sets, "notes = ?")
		vals = append(vals, *update.Notes)
	}

	return sets, vals
}
