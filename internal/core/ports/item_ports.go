package ports

import (
	"context"

	"github.com/shoevote/api/internal/core/domain"
)

type ItemRepository interface {
	CreateBatch(ctx context.Context, references []string) ([]domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type AddItemsInput struct {
	References []string
}

// CatalogService manages the item catalog and keeps the vote ledger
// referentially consistent with it.
type CatalogService interface {
	AddItems(ctx context.Context, input AddItemsInput) ([]domain.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	Wipe(ctx context.Context) error
}
