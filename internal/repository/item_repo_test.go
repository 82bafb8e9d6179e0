package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"home_inventory/internal/models"
)

func newMockItemRepo(t *testing.T) (*ItemRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewItemRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func itemRows(items ...models.Item) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "location", "quantity", "created_at"})
	for _, it := range items {
		rows.AddRow(it.ID, it.OwnerID, it.Name, it.Location, it.Quantity, it.CreatedAt)
	}
	return rows
}

func TestItemRepository_Create(t *testing.T) {
	repo, mock, cleanup := newMockItemRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertItemSQL)).
		WithArgs(sqlmock.AnyArg(), "u1", "Lamp", "Attic", 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), models.Item{
		OwnerID:  "u1",
		Name:     "Lamp",
		Location: "Attic",
		Quantity: 2,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated item id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}
	if created.OwnerID != "u1" || created.Quantity != 2 {
		t.Fatalf("unexpected item: %+v", created)
	}
}

func TestItemRepository_Create_ZeroQuantityPersisted(t *testing.T) {
	repo, mock, cleanup := newMockItemRepo(t)
	defer cleanup()

	// Explicit 0 must be written as 0, not coerced to the default.
	mock.ExpectExec(regexp.QuoteMeta(insertItemSQL)).
		WithArgs(sqlmock.AnyArg(), "u1", "Bulbs", "Garage", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), models.Item{
		OwnerID:  "u1",
		Name:     "Bulbs",
		Location: "Garage",
		Quantity: 0,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Quantity != 0 {
		t.Fatalf("quantity: got %d, want 0", created.Quantity)
	}
}

func TestItemRepository_ListByOwner(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	t.Run("returns only the owner's rows in insertion order", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectItemsByOwnerSQL)).
			WithArgs("u1").
			WillReturnRows(itemRows(
				models.Item{ID: "i1", OwnerID: "u1", Name: "Lamp", Location: "Attic", Quantity: 2, CreatedAt: now},
				models.Item{ID: "i2", OwnerID: "u1", Name: "Chair", Location: "Shed", Quantity: 1, CreatedAt: now},
			))

		items, err := repo.ListByOwner(context.Background(), "u1")
		if err != nil {
			t.Fatalf("ListByOwner returned error: %v", err)
		}
		if len(items) != 2 || items[0].ID != "i1" || items[1].ID != "i2" {
			t.Fatalf("unexpected items: %+v", items)
		}
	})

	t.Run("no rows yields empty non-nil slice", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectItemsByOwnerSQL)).
			WithArgs("u2").
			WillReturnRows(itemRows())

		items, err := repo.ListByOwner(context.Background(), "u2")
		if err != nil {
			t.Fatalf("ListByOwner returned error: %v", err)
		}
		if items == nil {
			t.Fatalf("expected non-nil empty slice")
		}
		if len(items) != 0 {
			t.Fatalf("expected no items, got %+v", items)
		}
	})
}

func TestItemRepository_FindOwned_UniformNotFound(t *testing.T) {
	// A nonexistent id and an id owned by another user are the same ErrNoRows
	// to the query, so both must surface as ErrItemNotFound.
	cases := []struct {
		name    string
		itemID  string
		ownerID string
	}{
		{name: "nonexistent id", itemID: "ghost", ownerID: "u1"},
		{name: "foreign-owned id", itemID: "i1", ownerID: "u2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := newMockItemRepo(t)
			defer cleanup()

			mock.ExpectQuery(regexp.QuoteMeta(selectOwnedItemSQL)).
				WithArgs(tc.itemID, tc.ownerID).
				WillReturnError(sql.ErrNoRows)

			_, err := repo.FindOwned(context.Background(), tc.itemID, tc.ownerID)
			if !errors.Is(err, ErrItemNotFound) {
				t.Fatalf("expected ErrItemNotFound, got %v", err)
			}
		})
	}
}

func TestItemRepository_Update(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	newName := "Desk Lamp"
	zero := 0

	t.Run("applies only provided fields", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectOwnedItemSQL)).
			WithArgs("i1", "u1").
			WillReturnRows(itemRows(models.Item{
				ID: "i1", OwnerID: "u1", Name: "Lamp", Location: "Attic", Quantity: 2, CreatedAt: now,
			}))
		mock.ExpectExec(regexp.QuoteMeta(updateItemSQL)).
			WithArgs(newName, "Attic", 2, "i1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.Update(context.Background(), "i1", "u1", ItemUpdate{Name: &newName})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if updated.Name != newName || updated.Location != "Attic" || updated.Quantity != 2 {
			t.Fatalf("unexpected item after update: %+v", updated)
		}
		if updated.OwnerID != "u1" {
			t.Fatalf("owner must never change, got %q", updated.OwnerID)
		}
	})

	t.Run("explicit zero quantity is written", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectOwnedItemSQL)).
			WithArgs("i1", "u1").
			WillReturnRows(itemRows(models.Item{
				ID: "i1", OwnerID: "u1", Name: "Lamp", Location: "Attic", Quantity: 2, CreatedAt: now,
			}))
		mock.ExpectExec(regexp.QuoteMeta(updateItemSQL)).
			WithArgs("Lamp", "Attic", 0, "i1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.Update(context.Background(), "i1", "u1", ItemUpdate{Quantity: &zero})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if updated.Quantity != 0 {
			t.Fatalf("quantity: got %d, want 0", updated.Quantity)
		}
	})

	t.Run("ownership check failure stops before any write", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectOwnedItemSQL)).
			WithArgs("i1", "intruder").
			WillReturnError(sql.ErrNoRows)
		// no ExpectExec: the UPDATE must never run

		_, err := repo.Update(context.Background(), "i1", "intruder", ItemUpdate{Name: &newName})
		if !errors.Is(err, ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestItemRepository_Delete(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectOwnedItemSQL)).
			WithArgs("i1", "u1").
			WillReturnRows(itemRows(models.Item{
				ID: "i1", OwnerID: "u1", Name: "Lamp", Location: "Attic", Quantity: 2, CreatedAt: now,
			}))
		mock.ExpectExec(regexp.QuoteMeta(deleteItemSQL)).
			WithArgs("i1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Delete(context.Background(), "i1", "u1"); err != nil {
			t.Fatalf("Delete returned error: %v", err)
		}
	})

	t.Run("foreign-owned item is not found and not deleted", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectOwnedItemSQL)).
			WithArgs("i1", "intruder").
			WillReturnError(sql.ErrNoRows)
		// no ExpectExec: the DELETE must never run

		err := repo.Delete(context.Background(), "i1", "intruder")
		if !errors.Is(err, ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("timeout maps to storage unavailable", func(t *testing.T) {
		repo, mock, cleanup := newMockItemRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectOwnedItemSQL)).
			WithArgs("i1", "u1").
			WillReturnError(context.DeadlineExceeded)

		err := repo.Delete(context.Background(), "i1", "u1")
		if !errors.Is(err, ErrStorageUnavailable) {
			t.Fatalf("expected ErrStorageUnavailable, got %v", err)
		}
	})
}
