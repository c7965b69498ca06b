package ports

import (
	"context"

	"github.com/shoevote/api/internal/core/domain"
)

// VoteRepository persists per-voter vote state. Implementations must
// make each write durable before returning and must enforce the
// single-favorite-per-voter invariant at the storage level.
type VoteRepository interface {
	// ToggleLike flips the liked flag for the pair in a single atomic
	// write, creating the record with liked=true when absent. Returns
	// the new liked state.
	ToggleLike(ctx context.Context, voterKey string, itemID int64) (bool, error)

	// GetFavorite returns the voter's favorited item, if any.
	GetFavorite(ctx context.Context, voterKey string) (int64, bool, error)

	// SetFavorite marks itemID as the voter's favorite. Fails with
	// domain.ErrFavoriteConflict if another item is already favorited.
	SetFavorite(ctx context.Context, voterKey string, itemID int64) error

	// ClearFavorite drops the favorite flag on the pair, if set.
	ClearFavorite(ctx context.Context, voterKey string, itemID int64) error

	// SwitchFavorite atomically clears oldItemID's favorite flag and
	// sets it on newItemID. Fails with domain.ErrFavoriteConflict when
	// the voter's favorite is no longer oldItemID at execution time.
	SwitchFavorite(ctx context.Context, voterKey string, newItemID, oldItemID int64) error

	DeleteByItem(ctx context.Context, itemID int64) error
	DeleteByVoter(ctx context.Context, voterKey string) error
	DeleteAll(ctx context.Context) error
}

// VoteLedger is the voter-facing mutation surface.
type VoteLedger interface {
	ToggleLike(ctx context.Context, voterKey string, itemID int64) (bool, error)
	GetFavorite(ctx context.Context, voterKey string) (int64, bool, error)
	SetFavorite(ctx context.Context, voterKey string, itemID int64) (domain.FavoriteChange, error)
	ConfirmSwitchFavorite(ctx context.Context, voterKey string, newItemID, oldItemID int64) error
	RemoveItem(ctx context.Context, itemID int64) error
	RemoveVoter(ctx context.Context, voterKey string) error
	ClearAll(ctx context.Context) error
}
