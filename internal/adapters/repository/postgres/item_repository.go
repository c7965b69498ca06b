package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) ports.ItemRepository {
	return &itemRepository{
		db: db,
	}
}

func (r *itemRepository) CreateBatch(ctx context.Context, references []string) ([]domain.Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO items (reference)
		VALUES ($1)
		RETURNING id, reference, created_at
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare item statement: %w", err)
	}
	defer stmt.Close()

	items := make([]domain.Item, 0, len(references))
	for _, ref := range references {
		var item domain.Item
		if err := stmt.QueryRowContext(ctx, ref).Scan(&item.ID, &item.Reference, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to insert item: %w", err)
		}
		items = append(items, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return items, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `SELECT id, reference, created_at FROM items WHERE id = $1`

	var item domain.Item
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Reference, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("failed to delete all items: %w", err)
	}
	return nil
}
