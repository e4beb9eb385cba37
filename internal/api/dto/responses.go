package dto

import (
	"time"

	"github.com/hms-dev/mileage-backend/internal/application/reconcile"
	"github.com/hms-dev/mileage-backend/internal/infrastructure/storage"
)

// OKResponse acknowledges a mutation with no payload.
type OKResponse struct {
	OK bool `json:"ok"`
}

// OK is the canonical success acknowledgment.
func OK() OKResponse {
	return OKResponse{OK: true}
}

// AuthStatusResponse reports whether the caller holds a valid session.
type AuthStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

// SavedRouteResponse is one route template in the saved-routes map.
type SavedRouteResponse struct {
	Client   string  `json:"client"`
	Dest     string  `json:"dest"`
	Route    string  `json:"route"`
	Miles    float64 `json:"miles"`
	TripType string  `json:"tripType"`
	Trips    int     `json:"trips"`
}

// SavedRoutesResponse maps route keys to their templates, the shape the
// frontend stores routes in.
type SavedRoutesResponse map[string]SavedRouteResponse

// ToSavedRoutesResponse converts stored routes into the keyed map shape.
func ToSavedRoutesResponse(routes []storage.SavedRoute) SavedRoutesResponse {
	resp := make(SavedRoutesResponse, len(routes))
	for _, route := range routes {
		resp[route.Key] = SavedRouteResponse{
			Client:   route.Client,
			Dest:     route.Dest,
			Route:    route.Route,
			Miles:    route.Miles,
			TripType: route.TripType,
			Trips:    route.Trips,
		}
	}
	return resp
}

// BulkResponse reports how many pending entries a bulk action touched.
type BulkResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// SyncStatusResponse reports the most recent reconciliation run.
type SyncStatusResponse struct {
	LastRun *time.Time        `json:"lastRun"`
	Result  *reconcile.Result `json:"result"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
}
