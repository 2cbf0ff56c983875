package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/workpulse/attendance-api/internal/core/domain"
	"github.com/workpulse/attendance-api/internal/core/ports"
)

const (
	historyLimit     = 30
	adminReportLimit = 100

	adminReportCacheKey = "report:admin"
	adminReportCacheTTL = 30 * time.Second
)

// ReportCache abstracts the short-lived admin report cache (Redis).
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// AttendanceService enforces the per-user-per-day attendance state
// machine: NoRecord → CheckedIn → CheckedOut, terminal for that date.
// Atomicity of the transitions is delegated to the repository's
// conditional writes.
type AttendanceService struct {
	repo   ports.AttendanceRepository
	cache  ReportCache
	logger zerolog.Logger
}

// NewAttendanceService returns an AttendanceService. cache may be nil,
// in which case the admin report always hits the store.
func NewAttendanceService(repo ports.AttendanceRepository, cache ReportCache, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{repo: repo, cache: cache, logger: logger}
}

// CheckIn opens today's attendance record for the user. The location is
// validated before any store access: a missing field is reported ahead
// of an out-of-range one.
func (s *AttendanceService) CheckIn(ctx context.Context, input ports.CheckInInput) (*ports.CheckInResult, error) {
	if input.Latitude == nil || input.Longitude == nil {
		return nil, domain.ErrMissingLocation
	}

	loc := domain.Coordinates{Latitude: *input.Latitude, Longitude: *input.Longitude}
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.CreateCheckIn(ctx, input.Username, loc, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", input.Username).
		Time("check_in_time", record.CheckInTime).
		Msg("check-in recorded")

	return &ports.CheckInResult{CheckInTime: record.CheckInTime}, nil
}

// CheckOut closes today's open record for the user.
func (s *AttendanceService) CheckOut(ctx context.Context, username string) (*ports.CheckOutResult, error) {
	record, err := s.repo.CloseOpenCheckIn(ctx, username, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", username).
		Time("check_out_time", *record.CheckOutTime).
		Msg("check-out recorded")

	return &ports.CheckOutResult{CheckOutTime: *record.CheckOutTime}, nil
}

// History returns the user's per-date summaries, most recent date first.
func (s *AttendanceService) History(ctx context.Context, username string) ([]domain.DaySummary, error) {
	return s.repo.SummarizeByUser(ctx, username, historyLimit)
}

// AdminReport returns per-(user, date) summaries across all users, most
// recent date first. Results are served from the cache when fresh; cache
// failures degrade to a direct query.
func (s *AttendanceService) AdminReport(ctx context.Context) ([]domain.DaySummary, error) {
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, adminReportCacheKey); err != nil {
			s.logger.Warn().Err(err).Msg("report cache read failed, querying store")
		} else if ok {
			var cached []domain.DaySummary
			if err := json.Unmarshal(raw, &cached); err != nil {
				s.logger.Warn().Err(err).Msg("discarding undecodable cached report")
			} else {
				return cached, nil
			}
		}
	}

	report, err := s.repo.SummarizeAll(ctx, adminReportLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(report); err == nil {
			if err := s.cache.Set(ctx, adminReportCacheKey, raw, adminReportCacheTTL); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache admin report")
			}
		}
	}

	return report, nil
}
