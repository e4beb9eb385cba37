package storage

import (
	"fmt"
	"regexp"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// GetStats returns aggregate mileage statistics, optionally filtered to a
// single year. A year that does not look like YYYY is ignored.
func (s *Storage) GetStats(year string) (*Stats, error) {
	stats := &Stats{
		ByClient: make([]ClientStat, 0),
		ByMonth:  make([]MonthStat, 0),
		Years:    make([]string, 0),
	}

	whereClause := ""
	dateWhereClause := ""
	var params []interface{}

	if year != "" && yearPattern.MatchString(year) {
		whereClause = "WHERE strftime('%Y', date) = ?"
		dateWhereClause = "AND strftime('%Y', date) = ?"
		params = append(params, year)
	} else {
		year = ""
	}

	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(miles), 0) FROM jobs "+whereClause, params...,
	).Scan(&stats.TotalJobs, &stats.TotalMiles)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	clientRows, err := s.db.Query(
		"SELECT client, SUM(miles), COUNT(*) FROM jobs "+whereClause+" GROUP BY client ORDER BY SUM(miles) DESC",
		params...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get client stats: %w", err)
	}
	defer func() { _ = clientRows.Close() }()

	for clientRows.Next() {
		var cs ClientStat
		if err := clientRows.Scan(&cs.Client, &cs.Miles, &cs.Jobs); err != nil {
			return nil, fmt.Errorf("failed to scan client stat: %w", err)
		}
		stats.ByClient = append(stats.ByClient, cs)
	}
	if err := clientRows.Err(); err != nil {
		return nil, err
	}

	var monthParams []interface{}
	if year != "" {
		monthParams = append(monthParams, year)
	}
	monthRows, err := s.db.Query(`
		SELECT strftime('%Y-%m', date), SUM(miles), COUNT(*)
		FROM jobs WHERE date != '' `+dateWhereClause+`
		GROUP BY strftime('%Y-%m', date) ORDER BY strftime('%Y-%m', date)
	`, monthParams...)
	if err != nil {
		return nil, fmt.Errorf("failed to get month stats: %w", err)
	}
	defer func() { _ = monthRows.Close() }()

	for monthRows.Next() {
		var ms MonthStat
		if err := monthRows.Scan(&ms.Month, &ms.Miles, &ms.Jobs); err != nil {
			return nil, fmt.Errorf("failed to scan month stat: %w", err)
		}
		stats.ByMonth = append(stats.ByMonth, ms)
	}
	if err := monthRows.Err(); err != nil {
		return nil, err
	}

	yearRows, err := s.db.Query(`
		SELECT DISTINCT strftime('%Y', date) FROM jobs
		WHERE date != '' ORDER BY strftime('%Y', date) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get years: %w", err)
	}
	defer func() { _ = yearRows.Close() }()

	for yearRows.Next() {
		var y string
		if err := yearRows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		if y != "" {
			stats.Years = append(stats.Years, y)
		}
	}

	return stats, yearRows.Err()
}
