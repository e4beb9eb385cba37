// Package registry derives the known-client set and per-client travel
// profiles from historical ledger data.
//
// A Snapshot is computed once at the start of a reconciliation run and
// treated as immutable for the run's duration, so concurrent ledger writes
// cannot shift match results mid-run.
package registry

import (
	"math"
	"sort"

	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

// Profile is the dominant travel pattern for one client, derived from
// ledger entries with positive miles.
type Profile struct {
	AvgMiles float64
	Dest     string
	Route    string
	TripType string
}

// Snapshot is an immutable view of known clients and their profiles.
type Snapshot struct {
	clients  []string
	profiles map[string]Profile
}

// BuildSnapshot derives a registry snapshot from ledger entries and saved
// route templates.
func BuildSnapshot(jobs []storage.Job, routes []storage.SavedRoute) *Snapshot {
	seen := make(map[string]bool)
	var clients []string

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		clients = append(clients, name)
	}

	for _, job := range jobs {
		add(job.Client)
	}
	for _, route := range routes {
		add(route.Client)
	}

	profiles := make(map[string]Profile)
	for _, client := range clients {
		if profile, ok := buildProfile(client, jobs); ok {
			profiles[client] = profile
		}
	}

	return &Snapshot{clients: clients, profiles: profiles}
}

// KnownClients returns the distinct non-empty client names, case-sensitive
// as stored, in first-seen order.
func (s *Snapshot) KnownClients() []string {
	return s.clients
}

// Profile returns the travel profile for a client. Clients without any
// positive-miles history have no profile.
func (s *Snapshot) Profile(name string) (Profile, bool) {
	profile, ok := s.profiles[name]
	return profile, ok
}

type pattern struct {
	dest     string
	route    string
	tripType string
}

// buildProfile averages miles over the client's positive-miles entries and
// picks the most frequent (dest, route, trip type) grouping, ties broken
// by the most recently created entry in the group.
func buildProfile(client string, jobs []storage.Job) (Profile, bool) {
	var totalMiles float64
	count := 0
	freq := make(map[pattern]int)
	latest := make(map[pattern]int64)

	for _, job := range jobs {
		if job.Client != client || job.Miles <= 0 {
			continue
		}
		totalMiles += job.Miles
		count++

		p := pattern{dest: job.Dest, route: job.Route, tripType: job.TripType}
		freq[p]++
		if job.ID > latest[p] {
			latest[p] = job.ID
		}
	}

	if count == 0 {
		return Profile{}, false
	}

	patterns := make([]pattern, 0, len(freq))
	for p := range freq {
		patterns = append(patterns, p)
	}
	sort.Slice(patterns, func(i, j int) bool {
		if freq[patterns[i]] != freq[patterns[j]] {
			return freq[patterns[i]] > freq[patterns[j]]
		}
		return latest[patterns[i]] > latest[patterns[j]]
	})

	dominant := patterns[0]
	return Profile{
		AvgMiles: math.Round(totalMiles/float64(count)*10) / 10,
		Dest:     dominant.dest,
		Route:    dominant.route,
		TripType: dominant.tripType,
	}, true
}
