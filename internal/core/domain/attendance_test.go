package domain

import "testing"

func TestCoordinates_Validate(t *testing.T) {
	cases := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"origin", 0, 0, false},
		{"typical", 40.4168, -3.7038, false},
		{"lat upper boundary", 90, 0, false},
		{"lat lower boundary", -90, 0, false},
		{"lon upper boundary", 0, 180, false},
		{"lon lower boundary", 0, -180, false},
		{"all boundaries", -90, -180, false},
		{"lat above range", 90.0001, 0, true},
		{"lat below range", -90.0001, 0, true},
		{"lon above range", 0, 180.0001, true},
		{"lon below range", 0, -180.0001, true},
		{"both out of range", 120, 200, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Coordinates{Latitude: tc.lat, Longitude: tc.lon}.Validate()
			if tc.wantErr && err != ErrInvalidCoordinates {
				t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
		})
	}
}

func TestAttendanceRecord_Open(t *testing.T) {
	r := &AttendanceRecord{}
	if !r.Open() {
		t.Fatalf("record without check-out should be open")
	}

	out := r.CheckInTime
	r.CheckOutTime = &out
	if r.Open() {
		t.Fatalf("record with check-out should be closed")
	}
}
