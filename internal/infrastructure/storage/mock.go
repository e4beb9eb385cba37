package storage

import (
	"sort"
	"strings"
	"time"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	jobs      map[int64]*Job
	routes    map[string]*SavedRoute
	pending   map[int64]*PendingEntry
	nextJobID int64
	nextPenID int64

	// Hooks for test assertions
	InsertBatchCalled bool
	LastInsertedBatch []PendingEntry

	// Error injection for testing error paths
	ListJobsErr    error
	ListRoutesErr  error
	PendingUIDsErr error
	InsertBatchErr error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		jobs:      make(map[int64]*Job),
		routes:    make(map[string]*SavedRoute),
		pending:   make(map[int64]*PendingEntry),
		nextJobID: 1,
		nextPenID: 1,
	}
}

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

func (m *MockRepository) ListJobs() ([]Job, error) {
	if m.ListJobsErr != nil {
		return nil, m.ListJobsErr
	}
	jobs := make([]Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].Date != jobs[j].Date {
			return jobs[i].Date > jobs[j].Date
		}
		return jobs[i].ID > jobs[j].ID
	})
	return jobs, nil
}

func (m *MockRepository) GetJob(id int64) (*Job, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *job
	return &copied, nil
}

func (m *MockRepository) CreateJob(job Job) (*Job, error) {
	if job.TripType == "" {
		job.TripType = TripTypeRound
	}
	if job.Trips <= 0 {
		job.Trips = 1
	}
	job.ID = m.nextJobID
	job.CreatedAt = time.Now().UTC().Format("2006-01-02 15:04:05")
	m.nextJobID++
	copied := job
	m.jobs[job.ID] = &copied
	return &job, nil
}

func (m *MockRepository) UpdateJob(id int64, update JobUpdate) (*Job, error) {
	if update.IsEmpty() {
		return nil, ErrNoFields
	}
	job, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	applyUpdate(update, &job.Client, &job.Date, &job.Dest, &job.Route, &job.Miles, &job.TripType, &job.Trips, &job.Notes)
	copied := *job
	return &copied, nil
}

func (m *MockRepository) DeleteJob(id int64) error {
	if _, ok := m.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *MockRepository) ListRoutes() ([]SavedRoute, error) {
	if m.ListRoutesErr != nil {
		return nil, m.ListRoutesErr
	}
	routes := make([]SavedRoute, 0, len(m.routes))
	for _, route := range m.routes {
		routes = append(routes, *route)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Client != routes[j].Client {
			return routes[i].Client < routes[j].Client
		}
		return routes[i].Dest < routes[j].Dest
	})
	return routes, nil
}

func (m *MockRepository) UpsertRoute(route SavedRoute) error {
	if route.TripType == "" {
		route.TripType = TripTypeRound
	}
	if route.Trips <= 0 {
		route.Trips = 1
	}
	route.UpdatedAt = time.Now().UTC().Format("2006-01-02 15:04:05")
	copied := route
	m.routes[route.Key] = &copied
	return nil
}

func (m *MockRepository) DeleteRoute(key string) error {
	delete(m.routes, key)
	return nil
}

func (m *MockRepository) ListPending(status PendingStatus) ([]PendingEntry, error) {
	entries := make([]PendingEntry, 0)
	for _, entry := range m.pending {
		if status == "" || entry.Status == status {
			entries = append(entries, *entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

func (m *MockRepository) GetPending(id int64) (*PendingEntry, error) {
	entry, ok := m.pending[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (m *MockRepository) PendingUIDs() (map[string]bool, error) {
	if m.PendingUIDsErr != nil {
		return nil, m.PendingUIDsErr
	}
	uids := make(map[string]bool)
	for _, entry := range m.pending {
		if entry.UID != "" {
			uids[entry.UID] = true
		}
	}
	return uids, nil
}

func (m *MockRepository) InsertPendingBatch(entries []PendingEntry) error {
	m.InsertBatchCalled = true
	m.LastInsertedBatch = entries
	if m.InsertBatchErr != nil {
		return m.InsertBatchErr
	}
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
		entry.ID = m.nextPenID
		entry.CreatedAt = time.Now().UTC().Format("2006-01-02 15:04:05")
		m.nextPenID++
		copied := entry
		m.pending[entry.ID] = &copied
	}
	return nil
}

func (m *MockRepository) UpdatePending(id int64, update JobUpdate) (*PendingEntry, error) {
	if update.IsEmpty() {
		return nil, ErrNoFields
	}
	entry, ok := m.pending[id]
	if !ok {
		return nil, ErrNotFound
	}
	if entry.Status != StatusPending {
		return nil, ErrNotPending
	}
	applyUpdate(update, &entry.Client, &entry.Date, &entry.Dest, &entry.Route, &entry.Miles, &entry.TripType, &entry.Trips, &entry.Notes)
	copied := *entry
	return &copied, nil
}

func (m *MockRepository) ApprovePending(id int64) (*Job, error) {
	entry, ok := m.pending[id]
	if !ok {
		return nil, ErrNotFound
	}
	if entry.Status != StatusPending {
		return nil, ErrNotPending
	}
	if entry.Miles <= 0 {
		return nil, ErrZeroMiles
	}
	job, err := m.CreateJob(Job{
		Client:   entry.Client,
		Date:     entry.Date,
		Dest:     entry.Dest,
		Route:    entry.Route,
		Miles:    entry.Miles,
		TripType: entry.TripType,
		Trips:    entry.Trips,
		Notes:    entry.Notes,
	})
	if err != nil {
		return nil, err
	}
	entry.Status = StatusApproved
	return job, nil
}

func (m *MockRepository) DismissPending(id int64) error {
	entry, ok := m.pending[id]
	if !ok {
		return ErrNotFound
	}
	if entry.Status != StatusPending {
		return ErrNotPending
	}
	entry.Status = StatusDismissed
	return nil
}

func (m *MockRepository) ApproveAll(today string) (int, error) {
	var ids []int64
	for id, entry := range m.pending {
		if entry.Status == StatusPending && entry.Miles > 0 && entry.Date <= today {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if _, err := m.ApprovePending(id); err != nil {
			return 0, err
		}
	}
	return len(ids), nil
}

func (m *MockRepository) DismissAll() (int, error) {
	count := 0
	for _, entry := range m.pending {
		if entry.Status == StatusPending {
			entry.Status = StatusDismissed
			count++
		}
	}
	return count, nil
}

func (m *MockRepository) GetStats(year string) (*Stats, error) {
	stats := &Stats{
		ByClient: make([]ClientStat, 0),
		ByMonth:  make([]MonthStat, 0),
		Years:    make([]string, 0),
	}

	byClient := make(map[string]*ClientStat)
	byMonth := make(map[string]*MonthStat)
	years := make(map[string]bool)

	for _, job := range m.jobs {
		if len(job.Date) >= 4 {
			years[job.Date[:4]] = true
		}
		if year != "" && !strings.HasPrefix(job.Date, year) {
			continue
		}
		stats.TotalJobs++
		stats.TotalMiles += job.Miles

		cs, ok := byClient[job.Client]
		if !ok {
			cs = &ClientStat{Client: job.Client}
			byClient[job.Client] = cs
		}
		cs.Miles += job.Miles
		cs.Jobs++

		if len(job.Date) >= 7 {
			month := job.Date[:7]
			ms, ok := byMonth[month]
			if !ok {
				ms = &MonthStat{Month: month}
				byMonth[month] = ms
			}
			ms.Miles += job.Miles
			ms.Jobs++
		}
	}

	for _, cs := range byClient {
		stats.ByClient = append(stats.ByClient, *cs)
	}
	sort.Slice(stats.ByClient, func(i, j int) bool { return stats.ByClient[i].Miles > stats.ByClient[j].Miles })

	for _, ms := range byMonth {
		stats.ByMonth = append(stats.ByMonth, *ms)
	}
	sort.Slice(stats.ByMonth, func(i, j int) bool { return stats.ByMonth[i].Month < stats.ByMonth[j].Month })

	for y := range years {
		stats.Years = append(stats.Years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(stats.Years)))

	return stats, nil
}

func applyUpdate(update JobUpdate, client, date, dest, route *string, miles *float64, tripType *string, trips *int, notes *string) {
	if update.Client != nil {
		*client = *update.Client
	}
	if update.Date != nil {
		*date = *update.Date
	}
	if update.Dest != nil {
		*dest = *update.Dest
	}
	if update.Route != nil {
		*route = *update.Route
	}
	if update.Miles != nil {
		*miles = *update.Miles
	}
	if update.TripType != nil {
		*tripType = *update.TripType
	}
	if update.Trips != nil {
		*trips = *update.Trips
	}
	if update.Notes != nil {
		*notes = *update.Notes
	}
}
