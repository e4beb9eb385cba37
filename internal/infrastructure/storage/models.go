package storage

// PendingStatus is the lifecycle state of a pending entry.
// Entries are created pending and move to exactly one terminal state.
type PendingStatus string

const (
	StatusPending   PendingStatus = "pending"
	StatusApproved  PendingStatus = "approved"
	StatusDismissed PendingStatus = "dismissed"
)

// Trip type values for jobs and pending entries.
const (
	TripTypeRound  = "round"
	TripTypeOneWay = "one-way"
)

// Job is a confirmed billable trip in the ledger.
type Job struct {
	ID        int64   `json:"id"`
	Client    string  `json:"client"`
	Date      string  `json:"date"` // YYYY-MM-DD, may be empty
	Dest      string  `json:"dest"`
	Route     string  `json:"route"`
	Miles     float64 `json:"miles"`
	TripType  string  `json:"trip_type"`
	Trips     int     `json:"trips"`
	Notes     string  `json:"notes"`
	CreatedAt string  `json:"created_at"`
}

// JobUpdate holds a partial update for a job. Nil fields are left untouched.
type JobUpdate struct {
	Client   *string  `json:"client"`
	Date     *string  `json:"date"`
	Dest     *string  `json:"dest"`
	Route    *string  `json:"route"`
	Miles    *float64 `json:"miles"`
	TripType *string  `json:"trip_type"`
	Trips    *int     `json:"trips"`
	Notes    *string  `json:"notes"`
}

// IsEmpty reports whether the update carries no recognized fields.
func (u JobUpdate) IsEmpty() bool {
	return u.Client == nil && u.Date == nil && u.Dest == nil && u.Route == nil &&
		u.Miles == nil && u.TripType == nil && u.Trips == nil && u.Notes == nil
}

// SavedRoute is a named trip template keyed by an opaque string.
type SavedRoute struct {
	Key       string  `json:"key"`
	Client    string  `json:"client"`
	Dest      string  `json:"dest"`
	Route     string  `json:"route"`
	Miles     float64 `json:"miles"`
	TripType  string  `json:"trip_type"`
	Trips     int     `json:"trips"`
	UpdatedAt string  `json:"updated_at"`
}

// PendingEntry is a draft trip produced by calendar reconciliation,
// awaiting human approval or dismissal. Entries are never physically
// deleted; status is the terminal marker.
type PendingEntry struct {
	ID        int64         `json:"id"`
	UID       string        `json:"uid"` // calendar event UID, may be empty
	Summary   string        `json:"summary"`
	Client    string        `json:"client"`
	Date      string        `json:"date"`
	Dest      string        `json:"dest"`
	Route     string        `json:"route"`
	Miles     float64       `json:"miles"` // 0 means "needs review"
	TripType  string        `json:"trip_type"`
	Trips     int           `json:"trips"`
	Notes     string        `json:"notes"`
	MatchNote string        `json:"match_note"`
	Status    PendingStatus `json:"status"`
	CreatedAt string        `json:"created_at"`
}

// Stats is the aggregate reporting payload.
type Stats struct {
	TotalJobs  int          `json:"totalJobs"`
	TotalMiles float64      `json:"totalMiles"`
	ByClient   []ClientStat `json:"byClient"`
	ByMonth    []MonthStat  `json:"byMonth"`
	Years      []string     `json:"years"`
}

// ClientStat is mileage grouped by client.
type ClientStat struct {
	Client string  `json:"client"`
	Miles  float64 `json:"miles"`
	Jobs   int     `json:"jobs"`
}

// MonthStat is mileage grouped by calendar month (YYYY-MM).
type MonthStat struct {
	Month string  `json:"month"`
	Miles float64 `json:"miles"`
	Jobs  int     `json:"jobs"`
}
