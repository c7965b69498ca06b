package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

type rankingRepository struct {
	db *sql.DB
}

func NewRankingRepository(db *sql.DB) ports.RankingRepository {
	return &rankingRepository{
		db: db,
	}
}

// Tallies returns every catalog item exactly once, with its favorite
// and like counts summed over all voters. The LEFT JOIN keeps items
// nobody voted on; the ORDER BY is the canonical rank order and its
// final item_id key makes ties deterministic.
func (r *rankingRepository) Tallies(ctx context.Context) ([]domain.ItemTally, error) {
	query := `
		SELECT i.id, i.reference,
		       COALESCE(SUM(CASE WHEN v.is_favorite THEN 1 ELSE 0 END), 0) AS favorite_count,
		       COALESCE(SUM(CASE WHEN v.liked THEN 1 ELSE 0 END), 0) AS like_count
		FROM items i
		LEFT JOIN votes v ON v.item_id = i.id
		GROUP BY i.id, i.reference
		ORDER BY favorite_count DESC, like_count DESC, i.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tallies: %w", err)
	}
	defer rows.Close()

	var tallies []domain.ItemTally
	for rows.Next() {
		var t domain.ItemTally
		if err := rows.Scan(&t.ItemID, &t.Reference, &t.FavoriteCount, &t.LikeCount); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tallies: %w", err)
	}
	return tallies, nil
}

// TalliesForVoter is Tallies joined with one voter's own flags, in the
// same rank order.
func (r *rankingRepository) TalliesForVoter(ctx context.Context, voterKey string) ([]domain.GalleryEntry, error) {
	query := `
		SELECT i.id, i.reference,
		       COALESCE(SUM(CASE WHEN v.is_favorite THEN 1 ELSE 0 END), 0) AS favorite_count,
		       COALESCE(SUM(CASE WHEN v.liked THEN 1 ELSE 0 END), 0) AS like_count,
		       COALESCE(BOOL_OR(v.liked AND v.voter_key = $1), false) AS my_liked,
		       COALESCE(BOOL_OR(v.is_favorite AND v.voter_key = $1), false) AS my_favorite
		FROM items i
		LEFT JOIN votes v ON v.item_id = i.id
		GROUP BY i.id, i.reference
		ORDER BY favorite_count DESC, like_count DESC, i.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, voterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query voter tallies: %w", err)
	}
	defer rows.Close()

	var entries []domain.GalleryEntry
	for rows.Next() {
		var e domain.GalleryEntry
		if err := rows.Scan(&e.ItemID, &e.Reference, &e.FavoriteCount, &e.LikeCount, &e.MyLiked, &e.MyFavorite); err != nil {
			return nil, fmt.Errorf("failed to scan gallery entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gallery entries: %w", err)
	}
	return entries, nil
}
