package ports

import (
	"context"

	"github.com/cargotrack/cargo-api/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
// Username and email uniqueness are enforced by storage-level indexes.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
