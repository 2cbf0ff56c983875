package handler

import (
	"time"

	"github.com/workpulse/attendance-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"is_admin"`
}

// checkInRequest uses pointer fields so an absent coordinate is
// distinguishable from a zero one; presence is checked by the service.
type checkInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type checkInResponse struct {
	CheckInTime time.Time `json:"check_in_time"`
}

type checkOutResponse struct {
	CheckOutTime time.Time `json:"check_out_time"`
}

// historyResponse wraps both the per-user history and the admin report.
type historyResponse struct {
	Data []domain.DaySummary `json:"data"`
}
