package ports

import (
	"context"
	"time"

	"github.com/workpulse/attendance-api/internal/core/domain"
)

// CheckInInput is the DTO passed from the transport layer to the ledger.
// Latitude and Longitude are pointers so the service can distinguish a
// missing field from a zero coordinate.
type CheckInInput struct {
	Username  string
	Latitude  *float64
	Longitude *float64
}

// CheckInResult carries the persisted check-in timestamp.
type CheckInResult struct {
	CheckInTime time.Time
}

// CheckOutResult carries the persisted check-out timestamp.
type CheckOutResult struct {
	CheckOutTime time.Time
}

// AttendanceService is the attendance ledger: it enforces the
// one-check-in-then-one-check-out-per-user-per-day state machine and
// produces aggregated history.
type AttendanceService interface {
	CheckIn(ctx context.Context, input CheckInInput) (*CheckInResult, error)
	CheckOut(ctx context.Context, username string) (*CheckOutResult, error)
	History(ctx context.Context, username string) ([]domain.DaySummary, error)
	AdminReport(ctx context.Context) ([]domain.DaySummary, error)
}
