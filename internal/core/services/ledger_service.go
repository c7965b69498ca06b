package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

type ledgerService struct {
	voteRepo ports.VoteRepository
}

func NewLedgerService(voteRepo ports.VoteRepository) ports.VoteLedger {
	return &ledgerService{
		voteRepo: voteRepo,
	}
}

func (s *ledgerService) ToggleLike(ctx context.Context, voterKey string, itemID int64) (bool, error) {
	if voterKey == "" {
		return false, domain.ErrEmptyVoterKey
	}

	liked, err := s.voteRepo.ToggleLike(ctx, voterKey, itemID)
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (s *ledgerService) GetFavorite(ctx context.Context, voterKey string) (int64, bool, error) {
	if voterKey == "" {
		return 0, false, domain.ErrEmptyVoterKey
	}
	return s.voteRepo.GetFavorite(ctx, voterKey)
}

// SetFavorite applies the three-way favorite policy:
// the item is already the favorite -> clear it; no favorite -> set it;
// another item is the favorite -> report it and change nothing, the
// caller must confirm the switch via ConfirmSwitchFavorite.
func (s *ledgerService) SetFavorite(ctx context.Context, voterKey string, itemID int64) (domain.FavoriteChange, error) {
	if voterKey == "" {
		return domain.FavoriteChange{}, domain.ErrEmptyVoterKey
	}

	current, ok, err := s.voteRepo.GetFavorite(ctx, voterKey)
	if err != nil {
		return domain.FavoriteChange{}, fmt.Errorf("failed to read current favorite: %w", err)
	}

	if ok && current == itemID {
		if err := s.voteRepo.ClearFavorite(ctx, voterKey, itemID); err != nil {
			return domain.FavoriteChange{}, err
		}
		return domain.FavoriteChange{Status: domain.FavoriteCleared}, nil
	}

	if ok {
		return domain.FavoriteChange{
			Status:          domain.FavoriteNeedsConfirmation,
			CurrentFavorite: &current,
		}, nil
	}

	err = s.voteRepo.SetFavorite(ctx, voterKey, itemID)
	if errors.Is(err, domain.ErrFavoriteConflict) {
		// A concurrent request for the same voter won the race between
		// our read and the insert. Report the winner instead of
		// violating the single-favorite invariant.
		winner, winnerOK, getErr := s.voteRepo.GetFavorite(ctx, voterKey)
		if getErr != nil {
			return domain.FavoriteChange{}, fmt.Errorf("failed to re-read favorite after conflict: %w", getErr)
		}
		if !winnerOK {
			return domain.FavoriteChange{}, err
		}
		if winner == itemID {
			return domain.FavoriteChange{Status: domain.FavoriteSet}, nil
		}
		return domain.FavoriteChange{
			Status:          domain.FavoriteNeedsConfirmation,
			CurrentFavorite: &winner,
		}, nil
	}
	if err != nil {
		return domain.FavoriteChange{}, err
	}
	return domain.FavoriteChange{Status: domain.FavoriteSet}, nil
}

// ConfirmSwitchFavorite clears oldItemID and favorites newItemID as one
// atomic unit. It fails with domain.ErrFavoriteConflict when the
// voter's favorite is no longer oldItemID; the caller must re-fetch
// state rather than retry.
func (s *ledgerService) ConfirmSwitchFavorite(ctx context.Context, voterKey string, newItemID, oldItemID int64) error {
	if voterKey == "" {
		return domain.ErrEmptyVoterKey
	}
	if newItemID == oldItemID {
		return domain.ErrFavoriteConflict
	}
	return s.voteRepo.SwitchFavorite(ctx, voterKey, newItemID, oldItemID)
}

func (s *ledgerService) RemoveItem(ctx context.Context, itemID int64) error {
	return s.voteRepo.DeleteByItem(ctx, itemID)
}

func (s *ledgerService) RemoveVoter(ctx context.Context, voterKey string) error {
	if voterKey == "" {
		return domain.ErrEmptyVoterKey
	}
	return s.voteRepo.DeleteByVoter(ctx, voterKey)
}

func (s *ledgerService) ClearAll(ctx context.Context) error {
	return s.voteRepo.DeleteAll(ctx)
}
