package ports

import (
	"context"
	"time"

	"github.com/workpulse/attendance-api/internal/core/domain"
)

// AttendanceRepository defines persistence operations for attendance
// records. The write operations are atomic per (username, UTC date): the
// store enforces the one-record-per-user-per-day invariant so that
// concurrent requests cannot both succeed.
type AttendanceRepository interface {
	// CreateCheckIn inserts a new record for (username, date of now).
	// Returns domain.ErrAlreadyCheckedIn when a record for that day
	// already exists.
	CreateCheckIn(ctx context.Context, username string, loc domain.Coordinates, now time.Time) (*domain.AttendanceRecord, error)

	// CloseOpenCheckIn sets check_out_time on the open record for
	// (username, date of now). Returns domain.ErrNoOpenCheckIn when no
	// open record exists for that day.
	CloseOpenCheckIn(ctx context.Context, username string, now time.Time) (*domain.AttendanceRecord, error)

	// SummarizeByUser returns per-date summaries for one user, most
	// recent date first, capped at limit rows.
	SummarizeByUser(ctx context.Context, username string, limit int) ([]domain.DaySummary, error)

	// SummarizeAll returns per-(username, date) summaries across all
	// users, most recent date first, capped at limit rows.
	SummarizeAll(ctx context.Context, limit int) ([]domain.DaySummary, error)
}
