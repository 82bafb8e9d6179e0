package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"home_inventory/internal/models"
)

// Sentinel failures surfaced by the persistence layer. Callers match with
// errors.Is and translate to HTTP status codes at the edge.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrItemNotFound covers both "no such item" and "item belongs to someone
	// else". The two cases must stay indistinguishable to callers.
	ErrItemNotFound       = errors.New("item not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// storageTimeout bounds every individual database call.
const storageTimeout = 5 * time.Second

type Users interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ItemUpdate carries a partial update; nil fields are left untouched.
// There is intentionally no OwnerID field here.
type ItemUpdate struct {
	Name     *string
	Location *string
	Quantity *int
}

type Items interface {
	Create(ctx context.Context, item models.Item) (*models.Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Item, error)
	FindOwned(ctx context.Context, itemID, ownerID string) (*models.Item, error)
	Update(ctx context.Context, itemID, ownerID string, upd ItemUpdate) (*models.Item, error)
	Delete(ctx context.Context, itemID, ownerID string) error
}

type Repository struct {
	Users Users
	Items Items
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Items: NewItemRepository(db),
	}
}

// withTimeout derives a bounded storage context. The parent's cancellation is
// deliberately detached: a client disconnect must not abort an in-flight write
// (side effects complete, they are just never retried).
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), storageTimeout)
}

// storageErr maps a timed-out or unreachable store onto ErrStorageUnavailable
// and passes everything else through unchanged.
func storageErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrStorageUnavailable
	}
	return err
}
