package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/workpulse/attendance-api/internal/core/domain"
	"github.com/workpulse/attendance-api/internal/core/ports"
)

// memAttendanceRepo mirrors the store's semantics: one record per
// (username, UTC date), enforced atomically under a mutex so it behaves
// like the unique index under concurrent calls.
type memAttendanceRepo struct {
	mu      sync.Mutex
	nextID  int64
	records map[string]*domain.AttendanceRecord // username|date
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{records: make(map[string]*domain.AttendanceRecord)}
}

func dayKey(username string, ts time.Time) string {
	return username + "|" + ts.UTC().Format("2006-01-02")
}

func (r *memAttendanceRepo) CreateCheckIn(_ context.Context, username string, loc domain.Coordinates, now time.Time) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(username, now)
	if _, exists := r.records[key]; exists {
		return nil, domain.ErrAlreadyCheckedIn
	}

	r.nextID++
	record := &domain.AttendanceRecord{
		ID:          r.nextID,
		Username:    username,
		CheckInTime: now,
		Location:    loc,
	}
	r.records[key] = record

	clone := *record
	return &clone, nil
}

func (r *memAttendanceRepo) CloseOpenCheckIn(_ context.Context, username string, now time.Time) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[dayKey(username, now)]
	if !exists || !record.Open() {
		return nil, domain.ErrNoOpenCheckIn
	}

	out := now
	record.CheckOutTime = &out

	clone := *record
	return &clone, nil
}

func (r *memAttendanceRepo) SummarizeByUser(_ context.Context, username string, limit int) ([]domain.DaySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var summaries []domain.DaySummary
	for _, rec := range r.records {
		if rec.Username != username {
			continue
		}
		summaries = append(summaries, domain.DaySummary{
			Date:     rec.CheckInTime.UTC().Format("2006-01-02"),
			CheckIn:  rec.CheckInTime,
			CheckOut: rec.CheckOutTime,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Date > summaries[j].Date })
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (r *memAttendanceRepo) SummarizeAll(_ context.Context, limit int) ([]domain.DaySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var summaries []domain.DaySummary
	for _, rec := range r.records {
		summaries = append(summaries, domain.DaySummary{
			Username: rec.Username,
			Date:     rec.CheckInTime.UTC().Format("2006-01-02"),
			CheckIn:  rec.CheckInTime,
			CheckOut: rec.CheckOutTime,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Date > summaries[j].Date })
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func ptr(f float64) *float64 { return &f }

func newTestService(repo ports.AttendanceRepository, cache ReportCache) *AttendanceService {
	return NewAttendanceService(repo, cache, zerolog.Nop())
}

func TestAttendanceService_CheckIn_Success(t *testing.T) {
	svc := newTestService(newMemAttendanceRepo(), nil)

	result, err := svc.CheckIn(context.Background(), ports.CheckInInput{
		Username: "alice", Latitude: ptr(40.4), Longitude: ptr(-3.7),
	})
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if result.CheckInTime.IsZero() {
		t.Fatalf("expected persisted check-in time")
	}
}

func TestAttendanceService_CheckIn_TwiceSameDay(t *testing.T) {
	svc := newTestService(newMemAttendanceRepo(), nil)
	input := ports.CheckInInput{Username: "alice", Latitude: ptr(1), Longitude: ptr(1)}

	if _, err := svc.CheckIn(context.Background(), input); err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}
	if _, err := svc.CheckIn(context.Background(), input); err != domain.ErrAlreadyCheckedIn {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}

func TestAttendanceService_CheckIn_MissingLocation(t *testing.T) {
	svc := newTestService(newMemAttendanceRepo(), nil)

	cases := []ports.CheckInInput{
		{Username: "alice"},
		{Username: "alice", Latitude: ptr(10)},
		{Username: "alice", Longitude: ptr(10)},
	}
	for _, input := range cases {
		if _, err := svc.CheckIn(context.Background(), input); err != domain.ErrMissingLocation {
			t.Fatalf("expected ErrMissingLocation for %+v, got %v", input, err)
		}
	}
}

func TestAttendanceService_CheckIn_InvalidCoordinates(t *testing.T) {
	svc := newTestService(newMemAttendanceRepo(), nil)

	if _, err := svc.CheckIn(context.Background(), ports.CheckInInput{
		Username: "alice", Latitude: ptr(90.0001), Longitude: ptr(0),
	}); err != domain.ErrInvalidCoordinates {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
	if _, err := svc.CheckIn(context.Background(), ports.CheckInInput{
		Username: "alice", Latitude: ptr(0), Longitude: ptr(-180.0001),
	}); err != domain.ErrInvalidCoordinates {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestAttendanceService_CheckOut_Flow(t *testing.T) {
	svc := newTestService(newMemAttendanceRepo(), nil)

	// Check-out before any check-in.
	if _, err := svc.CheckOut(context.Background(), "alice"); err != domain.ErrNoOpenCheckIn {
		t.Fatalf("expected ErrNoOpenCheckIn, got %v", err)
	}

	if _, err := svc.CheckIn(context.Background(), ports.CheckInInput{
		Username: "alice", Latitude: ptr(1), Longitude: ptr(1),
	}); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	result, err := svc.CheckOut(context.Background(), "alice")
	if err != nil {
		t.Fatalf("check-out failed: %v", err)
	}
	if result.CheckOutTime.IsZero() {
		t.Fatalf("expected persisted check-out time")
	}

	// The day is terminal: a second check-out fails.
	if _, err := svc.CheckOut(context.Background(), "alice"); err != domain.ErrNoOpenCheckIn {
		t.Fatalf("expected ErrNoOpenCheckIn on second check-out, got %v", err)
	}
}

// N simultaneous check-ins for the same user and day must produce exactly
// one persisted record.
func TestAttendanceService_CheckIn_ConcurrentSameDay(t *testing.T) {
	repo := newMemAttendanceRepo()
	svc := newTestService(repo, nil)

	const n = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(context.Background(), ports.CheckInInput{
				Username: "alice", Latitude: ptr(1), Longitude: ptr(1),
			})
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				succeeded++
			case domain.ErrAlreadyCheckedIn:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly 1 successful check-in, got %d", succeeded)
	}
	if conflicts != n-1 {
		t.Fatalf("expected %d conflicts, got %d", n-1, conflicts)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(repo.records))
	}
}

func TestAttendanceService_History_OrderedMostRecentFirst(t *testing.T) {
	repo := newMemAttendanceRepo()
	svc := newTestService(repo, nil)

	for _, day := range []string{"2024-01-01", "2024-01-03", "2024-01-02"} {
		ts, _ := time.Parse("2006-01-02", day)
		if _, err := repo.CreateCheckIn(context.Background(), "alice", domain.Coordinates{Latitude: 1, Longitude: 1}, ts.Add(9*time.Hour)); err != nil {
			t.Fatalf("seed check-in: %v", err)
		}
	}

	summaries, err := svc.History(context.Background(), "alice")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(summaries))
	}
	want := []string{"2024-01-03", "2024-01-02", "2024-01-01"}
	for i, summary := range summaries {
		if summary.Date != want[i] {
			t.Fatalf("row %d: expected %s, got %s", i, want[i], summary.Date)
		}
	}
}

type memReportCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemReportCache() *memReportCache {
	return &memReportCache{data: make(map[string][]byte)}
}

func (c *memReportCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	raw, ok := c.data[key]
	return raw, ok, nil
}

func (c *memReportCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = value
	return nil
}

func TestAttendanceService_AdminReport_UsesCache(t *testing.T) {
	repo := newMemAttendanceRepo()
	cache := newMemReportCache()
	svc := newTestService(repo, cache)

	ts, _ := time.Parse("2006-01-02", "2024-02-01")
	if _, err := repo.CreateCheckIn(context.Background(), "alice", domain.Coordinates{Latitude: 1, Longitude: 1}, ts); err != nil {
		t.Fatalf("seed check-in: %v", err)
	}

	first, err := svc.AdminReport(context.Background())
	if err != nil {
		t.Fatalf("admin report failed: %v", err)
	}
	if len(first) != 1 || first[0].Username != "alice" {
		t.Fatalf("unexpected report: %+v", first)
	}
	if cache.sets != 1 {
		t.Fatalf("expected report to be cached, sets=%d", cache.sets)
	}

	// A later record does not appear while the cached copy is served.
	ts2, _ := time.Parse("2006-01-02", "2024-02-02")
	if _, err := repo.CreateCheckIn(context.Background(), "bob", domain.Coordinates{Latitude: 1, Longitude: 1}, ts2); err != nil {
		t.Fatalf("seed check-in: %v", err)
	}

	second, err := svc.AdminReport(context.Background())
	if err != nil {
		t.Fatalf("admin report failed: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached report with 1 row, got %d", len(second))
	}

	var roundTrip []domain.DaySummary
	if err := json.Unmarshal(cache.data["report:admin"], &roundTrip); err != nil {
		t.Fatalf("cached payload not decodable: %v", err)
	}
}
