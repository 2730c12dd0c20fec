package repository

import (
	"context"
	"time"

	"github.com/Codebuster0001/portfolio3/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Lookups that match nothing return an apperror.NotFound.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// GetFirst returns the earliest registered user, the owner of the portfolio.
	GetFirst(ctx context.Context) (*entity.User, error)
	// GetByResetToken matches the stored token hash and requires expiry after now.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// CompleteReset stores u.PasswordHash, clears the reset fields and bumps the
	// token version, but only while tokenHash is still pending and unexpired.
	// A reset that lost the race gets NotFound.
	CompleteReset(ctx context.Context, u *entity.User, tokenHash string, now time.Time) error
}
