package service

import (
	"context"
	"time"

	"home_inventory/internal/models"
	"home_inventory/internal/repository"
)

// Authorization covers registration, login and token verification.
type Authorization interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	GenerateToken(ctx context.Context, email, password string) (string, *models.User, error)
	ParseToken(accessToken string) (string, error)
}

// Inventory exposes owner-scoped CRUD over inventory items. Every operation
// takes the authenticated owner's id; there is no unscoped access path.
type Inventory interface {
	CreateItem(ctx context.Context, ownerID string, p CreateItemParams) (*models.Item, error)
	ListItems(ctx context.Context, ownerID string) ([]models.Item, error)
	UpdateItem(ctx context.Context, itemID, ownerID string, p UpdateItemParams) (*models.Item, error)
	DeleteItem(ctx context.Context, itemID, ownerID string) error
}

// CreateItemParams is the validated create payload. Quantity is a pointer so
// "omitted" (nil, defaults to 1) stays distinct from an explicit 0.
type CreateItemParams struct {
	Name     string
	Location string
	Quantity *int
}

// UpdateItemParams is a partial update; nil fields are left unchanged.
type UpdateItemParams struct {
	Name     *string
	Location *string
	Quantity *int
}

// AuthConfig carries process-wide token settings loaded once at startup.
// Rotating SigningKey invalidates all outstanding tokens.
type AuthConfig struct {
	SigningKey []byte
	TokenTTL   time.Duration
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Inventory
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg),
		Inventory:     NewInventoryService(repos.Items),
	}
}
