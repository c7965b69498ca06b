package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

// voteRepository stores one row per (voter_key, item_id) pair. Rows
// whose flags are both false are left in place; every read filters on
// the flags, so such rows are indistinguishable from absent ones.
//
// The single-favorite invariant is enforced twice: SwitchFavorite runs
// a compare-and-set inside a transaction, and the votes table carries a
// partial unique index on (voter_key) WHERE is_favorite as a backstop
// no interleaving can get past.
type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// ToggleLike flips the liked flag in one statement, so there is no
// read-then-write window between concurrent toggles.
func (r *voteRepository) ToggleLike(ctx context.Context, voterKey string, itemID int64) (bool, error) {
	query := `
		INSERT INTO votes (voter_key, item_id, liked)
		VALUES ($1, $2, true)
		ON CONFLICT (voter_key, item_id) DO UPDATE SET liked = NOT votes.liked
		RETURNING liked
	`
	var liked bool
	err := r.db.QueryRowContext(ctx, query, voterKey, itemID).Scan(&liked)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrItemNotFound
		}
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}
	return liked, nil
}

func (r *voteRepository) GetFavorite(ctx context.Context, voterKey string) (int64, bool, error) {
	query := `SELECT item_id FROM votes WHERE voter_key = $1 AND is_favorite LIMIT 1`

	var itemID int64
	err := r.db.QueryRowContext(ctx, query, voterKey).Scan(&itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get favorite: %w", err)
	}
	return itemID, true, nil
}

// SetFavorite marks itemID as the favorite. If a concurrent request
// favorited another item first, the partial unique index rejects the
// write and the caller sees domain.ErrFavoriteConflict.
func (r *voteRepository) SetFavorite(ctx context.Context, voterKey string, itemID int64) error {
	query := `
		INSERT INTO votes (voter_key, item_id, is_favorite)
		VALUES ($1, $2, true)
		ON CONFLICT (voter_key, item_id) DO UPDATE SET is_favorite = true
	`
	_, err := r.db.ExecContext(ctx, query, voterKey, itemID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrFavoriteConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("failed to set favorite: %w", err)
	}
	return nil
}

func (r *voteRepository) ClearFavorite(ctx context.Context, voterKey string, itemID int64) error {
	query := `
		UPDATE votes SET is_favorite = false
		WHERE voter_key = $1 AND item_id = $2 AND is_favorite
	`
	if _, err := r.db.ExecContext(ctx, query, voterKey, itemID); err != nil {
		return fmt.Errorf("failed to clear favorite: %w", err)
	}
	return nil
}

// SwitchFavorite clears the old favorite and sets the new one in a
// single transaction. The clear doubles as the compare-and-set: it
// must hit exactly the row that is still the favorite, otherwise the
// confirmation is stale and the whole switch is rolled back.
func (r *voteRepository) SwitchFavorite(ctx context.Context, voterKey string, newItemID, oldItemID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	clearQuery := `
		UPDATE votes SET is_favorite = false
		WHERE voter_key = $1 AND item_id = $2 AND is_favorite
	`
	res, err := tx.ExecContext(ctx, clearQuery, voterKey, oldItemID)
	if err != nil {
		return fmt.Errorf("failed to clear old favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read switch result: %w", err)
	}
	if affected != 1 {
		return domain.ErrFavoriteConflict
	}

	setQuery := `
		INSERT INTO votes (voter_key, item_id, is_favorite)
		VALUES ($1, $2, true)
		ON CONFLICT (voter_key, item_id) DO UPDATE SET is_favorite = true
	`
	if _, err := tx.ExecContext(ctx, setQuery, voterKey, newItemID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrFavoriteConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("failed to set new favorite: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *voteRepository) DeleteByItem(ctx context.Context, itemID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to delete votes for item: %w", err)
	}
	return nil
}

func (r *voteRepository) DeleteByVoter(ctx context.Context, voterKey string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE voter_key = $1`, voterKey); err != nil {
		return fmt.Errorf("failed to delete votes for voter: %w", err)
	}
	return nil
}

func (r *voteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM votes`); err != nil {
		return fmt.Errorf("failed to delete all votes: %w", err)
	}
	return nil
}
