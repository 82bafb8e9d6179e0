package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"home_inventory/internal/models"
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository { return &ItemRepository{db: db} }

var _ Items = (*ItemRepository)(nil)

const (
	insertItemSQL = `INSERT INTO items (id, owner_id, name, location, quantity, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	// rowid preserves insertion order without relying on timestamp precision.
	selectItemsByOwnerSQL = `SELECT id, owner_id, name, location, quantity, created_at FROM items WHERE owner_id = ? ORDER BY rowid`

	// The single existence+ownership check: filtering by owner_id in the same
	// query means a foreign-owned id scans as ErrNoRows, identical to a
	// nonexistent one.
	selectOwnedItemSQL = `SELECT id, owner_id, name, location, quantity, created_at FROM items WHERE id = ? AND owner_id = ?`

	updateItemSQL = `UPDATE items SET name = ?, location = ?, quantity = ? WHERE id = ? AND owner_id = ?`
	deleteItemSQL = `DELETE FROM items WHERE id = ? AND owner_id = ?`
)

// Create inserts a new item. If ID or CreatedAt are empty, they're set.
func (r *ItemRepository) Create(ctx context.Context, item models.Item) (*models.Item, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	} else {
		item.CreatedAt = item.CreatedAt.UTC()
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, insertItemSQL,
		item.ID, item.OwnerID, item.Name, item.Location, item.Quantity, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert item %q: %w", item.Name, storageErr(err))
	}
	return &item, nil
}

// ListByOwner returns the owner's items in insertion order. A user with no
// items gets an empty slice, never nil.
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, selectItemsByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items for owner: %w", storageErr(err))
	}
	defer rows.Close()

	out := make([]models.Item, 0, 16)
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Location, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.CreatedAt = it.CreatedAt.UTC()
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", storageErr(err))
	}
	return out, nil
}

// FindOwned resolves existence and ownership in one query. A missing row and a
// row owned by another user both come back as ErrItemNotFound.
func (r *ItemRepository) FindOwned(ctx context.Context, itemID, ownerID string) (*models.Item, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var it models.Item
	err := r.db.QueryRowContext(ctx, selectOwnedItemSQL, itemID, ownerID).
		Scan(&it.ID, &it.OwnerID, &it.Name, &it.Location, &it.Quantity, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("select item: %w", storageErr(err))
	}
	it.CreatedAt = it.CreatedAt.UTC()
	return &it, nil
}

// Update applies the non-nil fields of upd after an ownership check. OwnerID is
// not part of the update statement and can never change through this path.
func (r *ItemRepository) Update(ctx context.Context, itemID, ownerID string, upd ItemUpdate) (*models.Item, error) {
	it, err := r.FindOwned(ctx, itemID, ownerID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		it.Name = *upd.Name
	}
	if upd.Location != nil {
		it.Location = *upd.Location
	}
	if upd.Quantity != nil {
		it.Quantity = *upd.Quantity
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, updateItemSQL, it.Name, it.Location, it.Quantity, itemID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", storageErr(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		// Row vanished between check and write.
		return nil, ErrItemNotFound
	}
	return it, nil
}

// Delete removes an owned item, with the same ownership-first contract as Update.
func (r *ItemRepository) Delete(ctx context.Context, itemID, ownerID string) error {
	if _, err := r.FindOwned(ctx, itemID, ownerID); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, deleteItemSQL, itemID, ownerID)
	if err != nil {
		return fmt.Errorf("delete item: %w", storageErr(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrItemNotFound
	}
	return nil
}
