package dto

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SavedRouteRequest upserts a route template. Field names are camelCase
// to match the frontend's payloads.
type SavedRouteRequest struct {
	Key      string  `json:"key"`
	Client   string  `json:"client"`
	Dest     string  `json:"dest"`
	Route    string  `json:"route"`
	Miles    float64 `json:"miles"`
	TripType string  `json:"tripType"`
	Trips    int     `json:"trips"`
}
