package domain

import "time"

// Coordinates represents a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the point lies within the valid geographic range.
// The boundary values ±90 and ±180 are valid.
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return ErrInvalidCoordinates
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// AttendanceRecord is a single check-in, optionally closed by a check-out.
// Per (username, UTC calendar date) at most one record exists; an open
// record is one whose CheckOutTime is unset.
type AttendanceRecord struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	CheckInTime  time.Time   `json:"check_in_time"`
	CheckOutTime *time.Time  `json:"check_out_time,omitempty"`
	Location     Coordinates `json:"location"`
}

// Open reports whether the record has not yet been closed by a check-out.
func (r *AttendanceRecord) Open() bool {
	return r.CheckOutTime == nil
}

// DaySummary aggregates one user's attendance for a single calendar date:
// the earliest check-in and the latest check-out of that date. Username is
// populated only in the cross-user admin report.
type DaySummary struct {
	Username string     `json:"username,omitempty"`
	Date     string     `json:"date"`
	CheckIn  time.Time  `json:"check_in"`
	CheckOut *time.Time `json:"check_out,omitempty"`
}
