package service

import (
	"context"
	"fmt"
	"strings"

	"home_inventory/internal/models"
	"home_inventory/internal/repository"
)

// defaultQuantity applies when a create request omits quantity entirely.
// An explicit 0 is a valid value and is preserved as-is.
const defaultQuantity = 1

// InventoryService enforces input validation and owner stamping in front of
// the item repository.
type InventoryService struct {
	items repository.Items
}

func NewInventoryService(items repository.Items) *InventoryService {
	return &InventoryService{items: items}
}

var _ Inventory = (*InventoryService)(nil)

// CreateItem validates the payload and creates an item owned by ownerID.
// The owner is taken from the authenticated caller, never from the payload.
func (s *InventoryService) CreateItem(ctx context.Context, ownerID string, p CreateItemParams) (*models.Item, error) {
	name := strings.TrimSpace(p.Name)
	location := strings.TrimSpace(p.Location)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}

	quantity := defaultQuantity
	if p.Quantity != nil {
		if *p.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
		}
		quantity = *p.Quantity
	}

	return s.items.Create(ctx, models.Item{
		OwnerID:  ownerID,
		Name:     name,
		Location: location,
		Quantity: quantity,
	})
}

// ListItems returns all items owned by ownerID in insertion order.
func (s *InventoryService) ListItems(ctx context.Context, ownerID string) ([]models.Item, error) {
	return s.items.ListByOwner(ctx, ownerID)
}

// UpdateItem applies a partial update to an owned item. Fields left nil are
// unchanged; ownership is re-checked in the repository before any write.
func (s *InventoryService) UpdateItem(ctx context.Context, itemID, ownerID string, p UpdateItemParams) (*models.Item, error) {
	upd := repository.ItemUpdate{Quantity: p.Quantity}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		upd.Name = &name
	}
	if p.Location != nil {
		location := strings.TrimSpace(*p.Location)
		if location == "" {
			return nil, fmt.Errorf("%w: location must not be empty", ErrValidation)
		}
		upd.Location = &location
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	return s.items.Update(ctx, itemID, ownerID, upd)
}

// DeleteItem removes an owned item.
func (s *InventoryService) DeleteItem(ctx context.Context, itemID, ownerID string) error {
	return s.items.Delete(ctx, itemID, ownerID)
}
