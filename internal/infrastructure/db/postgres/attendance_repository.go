package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/workpulse/attendance-api/internal/core/domain"
)

// AttendanceRepository persists attendance records. Both write paths are
// single conditional statements, so the one-record-per-user-per-day
// invariant holds under concurrent requests without explicit locking.
type AttendanceRepository struct {
	db *Database
}

func NewAttendanceRepository(db *Database) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// CreateCheckIn inserts today's record for the user. The insert races
// against the attendance_user_day_uniq index: a concurrent duplicate
// lands on the conflict path and reports domain.ErrAlreadyCheckedIn.
func (r *AttendanceRepository) CreateCheckIn(ctx context.Context, username string, loc domain.Coordinates, now time.Time) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	record := domain.AttendanceRecord{Username: username, Location: loc}
	err := r.db.Pool().QueryRow(ctx,
		`INSERT INTO attendance (username, check_in_time, latitude, longitude)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (username, ((check_in_time AT TIME ZONE 'UTC')::date)) DO NOTHING
		 RETURNING id, check_in_time`,
		username, now, loc.Latitude, loc.Longitude,
	).Scan(&record.ID, &record.CheckInTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlreadyCheckedIn
		}
		return nil, storeErr("create check-in", err)
	}

	return &record, nil
}

// CloseOpenCheckIn fills check_out_time on today's open record. The
// update is conditional on the record still being open, so a concurrent
// second check-out finds zero rows and fails with ErrNoOpenCheckIn.
func (r *AttendanceRepository) CloseOpenCheckIn(ctx context.Context, username string, now time.Time) (*domain.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		record   domain.AttendanceRecord
		checkOut time.Time
	)
	err := r.db.Pool().QueryRow(ctx,
		`UPDATE attendance
		 SET check_out_time = $2
		 WHERE username = $1
		   AND (check_in_time AT TIME ZONE 'UTC')::date = ($2::timestamptz AT TIME ZONE 'UTC')::date
		   AND check_out_time IS NULL
		 RETURNING id, check_in_time, check_out_time`,
		username, now,
	).Scan(&record.ID, &record.CheckInTime, &checkOut)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoOpenCheckIn
		}
		return nil, storeErr("close check-in", err)
	}

	record.Username = username
	record.CheckOutTime = &checkOut
	return &record, nil
}

// SummarizeByUser groups one user's records by UTC date: earliest
// check-in, latest check-out, most recent date first.
func (r *AttendanceRepository) SummarizeByUser(ctx context.Context, username string, limit int) ([]domain.DaySummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.Pool().Query(ctx,
		`SELECT (check_in_time AT TIME ZONE 'UTC')::date AS day,
		        MIN(check_in_time)  AS first_check_in,
		        MAX(check_out_time) AS last_check_out
		 FROM attendance
		 WHERE username = $1
		 GROUP BY day
		 ORDER BY day DESC
		 LIMIT $2`,
		username, limit,
	)
	if err != nil {
		return nil, storeErr("summarize user attendance", err)
	}
	defer rows.Close()

	return scanSummaries(rows, false)
}

// SummarizeAll is the cross-user variant used by the admin report.
func (r *AttendanceRepository) SummarizeAll(ctx context.Context, limit int) ([]domain.DaySummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.Pool().Query(ctx,
		`SELECT username,
		        (check_in_time AT TIME ZONE 'UTC')::date AS day,
		        MIN(check_in_time)  AS first_check_in,
		        MAX(check_out_time) AS last_check_out
		 FROM attendance
		 GROUP BY username, day
		 ORDER BY day DESC, username ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, storeErr("summarize all attendance", err)
	}
	defer rows.Close()

	return scanSummaries(rows, true)
}

func scanSummaries(rows pgx.Rows, withUsername bool) ([]domain.DaySummary, error) {
	var summaries []domain.DaySummary
	for rows.Next() {
		var (
			s        domain.DaySummary
			day      time.Time
			checkOut *time.Time
		)

		var err error
		if withUsername {
			err = rows.Scan(&s.Username, &day, &s.CheckIn, &checkOut)
		} else {
			err = rows.Scan(&day, &s.CheckIn, &checkOut)
		}
		if err != nil {
			return nil, storeErr("scan summary", err)
		}

		s.Date = day.Format("2006-01-02")
		s.CheckOut = checkOut
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("read summaries", err)
	}
	return summaries, nil
}

// storeErr wraps repository failures. Timeouts and dropped connections
// surface as domain.ErrStoreUnavailable so callers know a retry is safe.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
