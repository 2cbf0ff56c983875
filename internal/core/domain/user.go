package domain

// User models an authenticated actor in the system. Accounts are
// provisioned out-of-band; this service only ever reads them.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}
