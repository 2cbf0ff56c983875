package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/attendance-api/internal/core/domain"
	"github.com/workpulse/attendance-api/internal/core/ports"
)

const defaultTokenTTL = 30 * time.Minute

// dummyHash is compared against when the username does not exist, so the
// unknown-user path costs the same bcrypt work as a real verification and
// response timing does not reveal whether an account exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService verifies credentials against the user store and mints
// signed, time-bounded access tokens. It keeps no session state: token
// validity is solely a function of signature and expiry.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login authenticates a username/password pair. Unknown usernames and
// wrong passwords both surface as domain.ErrInvalidCredentials so the
// response carries no enumeration signal.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, IsAdmin: user.IsAdmin}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.Username,
		"admin": user.IsAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
