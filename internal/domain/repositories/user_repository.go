package repositories

import (
	"context"
	"time"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
)

// UserRepository provides persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	// List returns every user. The analytics aggregator scans the whole
	// table; acceptable only at small volume.
	List(ctx context.Context) ([]*entities.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetOTP(ctx context.Context, id, secret string, expiry time.Time) error
	ClearOTP(ctx context.Context, id string) error
}
