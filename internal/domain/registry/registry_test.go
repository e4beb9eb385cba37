package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

func TestKnownClients(t *testing.T) {
	jobs := []storage.Job{
		{ID: 1, Client: "Acme Corp", Miles: 10},
		{ID: 2, Client: "Beta LLC", Miles: 20},
		{ID: 3, Client: "Acme Corp", Miles: 30},
		{ID: 4, Client: ""},
	}
	routes := []storage.SavedRoute{
		{Key: "r1", Client: "Gamma Inc"},
		{Key: "r2", Client: "Acme Corp"},
		{Key: "r3", Client: ""},
	}

	snap := BuildSnapshot(jobs, routes)

	assert.ElementsMatch(t, []string{"Acme Corp", "Beta LLC", "Gamma Inc"}, snap.KnownClients())
}

func TestKnownClientsIsCaseSensitive(t *testing.T) {
	snap := BuildSnapshot([]storage.Job{
		{ID: 1, Client: "acme corp"},
		{ID: 2, Client: "Acme Corp"},
	}, nil)

	assert.Len(t, snap.KnownClients(), 2)
}

func TestProfile(t *testing.T) {
	t.Run("averages miles to one decimal", func(t *testing.T) {
		snap := BuildSnapshot([]storage.Job{
			{ID: 1, Client: "Acme Corp", Miles: 40, Dest: "Springfield", Route: "Office → Acme Corp", TripType: "round"},
			{ID: 2, Client: "Acme Corp", Miles: 45, Dest: "Springfield", Route: "Office → Acme Corp", TripType: "round"},
		}, nil)

		profile, ok := snap.Profile("Acme Corp")
		require.True(t, ok)
		assert.Equal(t, 42.5, profile.AvgMiles)
		assert.Equal(t, "Springfield", profile.Dest)
		assert.Equal(t, "Office → Acme Corp", profile.Route)
		assert.Equal(t, "round", profile.TripType)
	})

	t.Run("rounds the average", func(t *testing.T) {
		snap := BuildSnapshot([]storage.Job{
			{ID: 1, Client: "Acme Corp", Miles: 10},
			{ID: 2, Client: "Acme Corp", Miles: 10},
			{ID: 3, Client: "Acme Corp", Miles: 11},
		}, nil)

		profile, ok := snap.Profile("Acme Corp")
		require.True(t, ok)
		assert.Equal(t, 10.3, profile.AvgMiles)
	})

	t.Run("dominant pattern wins over recency", func(t *testing.T) {
		snap := BuildSnapshot([]storage.Job{
			{ID: 1, Client: "Acme Corp", Miles: 10, Dest: "Springfield", Route: "Usual", TripType: "round"},
			{ID: 2, Client: "Acme Corp", Miles: 10, Dest: "Springfield", Route: "Usual", TripType: "round"},
			{ID: 3, Client: "Acme Corp", Miles: 10, Dest: "Shelbyville", Route: "One-off", TripType: "one-way"},
		}, nil)

		profile, ok := snap.Profile("Acme Corp")
		require.True(t, ok)
		assert.Equal(t, "Springfield", profile.Dest)
		assert.Equal(t, "Usual", profile.Route)
		assert.Equal(t, "round", profile.TripType)
	})

	t.Run("frequency ties broken by most recent entry", func(t *testing.T) {
		snap := BuildSnapshot([]storage.Job{
			{ID: 1, Client: "Acme Corp", Miles: 10, Dest: "Old", Route: "Old route", TripType: "round"},
			{ID: 2, Client: "Acme Corp", Miles: 10, Dest: "New", Route: "New route", TripType: "round"},
		}, nil)

		profile, ok := snap.Profile("Acme Corp")
		require.True(t, ok)
		assert.Equal(t, "New", profile.Dest)
	})

	t.Run("zero mile entries are excluded", func(t *testing.T) {
		snap := BuildSnapshot([]storage.Job{
			{ID: 1, Client: "Acme Corp", Miles: 0, Dest: "Nowhere"},
			{ID: 2, Client: "Acme Corp", Miles: 50, Dest: "Springfield"},
		}, nil)

		profile, ok := snap.Profile("Acme Corp")
		require.True(t, ok)
		assert.Equal(t, 50.0, profile.AvgMiles)
		assert.Equal(t, "Springfield", profile.Dest)
	})

	t.Run("no positive mileage history means no profile", func(t *testing.T) {
		snap := BuildSnapshot([]storage.Job{
			{ID: 1, Client: "Acme Corp", Miles: 0},
		}, []storage.SavedRoute{
			{Key: "r1", Client: "Route Only Client"},
		})

		_, ok := snap.Profile("Acme Corp")
		assert.False(t, ok)

		_, ok = snap.Profile("Route Only Client")
		assert.False(t, ok)
	})
}
