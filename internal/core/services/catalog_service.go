package services

import (
	"context"
	"fmt"

	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

type catalogService struct {
	itemRepo ports.ItemRepository
	ledger   ports.VoteLedger
}

func NewCatalogService(itemRepo ports.ItemRepository, ledger ports.VoteLedger) ports.CatalogService {
	return &catalogService{
		itemRepo: itemRepo,
		ledger:   ledger,
	}
}

func (s *catalogService) AddItems(ctx context.Context, input ports.AddItemsInput) ([]domain.Item, error) {
	references := make([]string, 0, len(input.References))
	for _, ref := range input.References {
		if ref == "" {
			continue
		}
		references = append(references, ref)
	}
	if len(references) == 0 {
		return nil, domain.ErrEmptyCatalogAdd
	}

	items, err := s.itemRepo.CreateBatch(ctx, references)
	if err != nil {
		return nil, fmt.Errorf("failed to add items: %w", err)
	}
	return items, nil
}

// DeleteItem removes the item and all votes referencing it. The votes
// FK also cascades on item deletion, so the ledger stays consistent
// even if this call is interrupted between the two steps.
func (s *catalogService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.ledger.RemoveItem(ctx, id); err != nil {
		return fmt.Errorf("failed to remove votes for item %d: %w", id, err)
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

func (s *catalogService) Wipe(ctx context.Context) error {
	if err := s.ledger.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear votes: %w", err)
	}
	if err := s.itemRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	return nil
}
