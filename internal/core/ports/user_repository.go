package ports

import (
	"context"

	"github.com/workpulse/attendance-api/internal/core/domain"
)

// UserRepository defines read access to the user credential store.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
