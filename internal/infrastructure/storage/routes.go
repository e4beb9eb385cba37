package storage

import "fmt"

// ListRoutes returns all saved routes ordered by client, dest
func (s *Storage) ListRoutes() ([]SavedRoute, error) {
	rows, err := s.db.Query(`
		SELECT key, client, dest, route, miles, trip_type, trips, updated_at
		FROM saved_routes ORDER BY client, dest
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved routes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var routes []SavedRoute
	for rows.Next() {
		var route SavedRoute
		if err := rows.Scan(
			&route.Key, &route.Client, &route.Dest, &route.Route,
			&route.Miles, &route.TripType, &route.Trips, &route.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan saved route row: %w", err)
		}
		routes = append(routes, route)
	}

	return routes, rows.Err()
}

// UpsertRoute inserts or replaces a saved route by key
func (s *Storage) UpsertRoute(route SavedRoute) error {
	if route.TripType == "" {
		route.TripType = TripTypeRound
	}
	if route.Trips <= 0 {
		route.Trips = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO saved_routes (key, client, dest, route, miles, trip_type, trips, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			client = excluded.client,
			dest = excluded.dest,
			route = excluded.route,
			miles = excluded.miles,
			trip_type = excluded.trip_type,
			trips = excluded.trips,
			updated_at = datetime('now')
	`, route.Key, route.Client, route.Dest, route.Route, route.Miles, route.TripType, route.Trips)
	if err != nil {
		return fmt.Errorf("failed to upsert saved route: %w", err)
	}

	return nil
}

// DeleteRoute removes a saved route by key
func (s *Storage) DeleteRoute(key string) error {
	if _, err := s.db.Exec("DELETE FROM saved_routes WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete saved route: %w", err)
	}
	return nil
}
