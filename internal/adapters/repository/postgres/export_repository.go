package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

type exportRepository struct {
	db *sql.DB
}

func NewExportRepository(db *sql.DB) ports.ExportRepository {
	return &exportRepository{
		db: db,
	}
}

func (r *exportRepository) ListRecords(ctx context.Context) ([]domain.VoteRecord, error) {
	query := `
		SELECT voter_key, item_id, liked, is_favorite
		FROM votes
		WHERE liked OR is_favorite
		ORDER BY voter_key, item_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote records: %w", err)
	}
	defer rows.Close()

	var records []domain.VoteRecord
	for rows.Next() {
		var rec domain.VoteRecord
		if err := rows.Scan(&rec.VoterKey, &rec.ItemID, &rec.Liked, &rec.IsFavorite); err != nil {
			return nil, fmt.Errorf("failed to scan vote record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote records: %w", err)
	}
	return records, nil
}

func (r *exportRepository) VoterSummaries(ctx context.Context) ([]domain.VoterSummary, error) {
	query := `
		SELECT voter_key,
		       SUM(CASE WHEN liked THEN 1 ELSE 0 END) AS likes_given,
		       MAX(CASE WHEN is_favorite THEN item_id END) AS favorite_item_id
		FROM votes
		WHERE liked OR is_favorite
		GROUP BY voter_key
		ORDER BY voter_key
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query voter summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.VoterSummary
	for rows.Next() {
		var s domain.VoterSummary
		var favorite sql.NullInt64
		if err := rows.Scan(&s.VoterKey, &s.LikesGiven, &favorite); err != nil {
			return nil, fmt.Errorf("failed to scan voter summary: %w", err)
		}
		if favorite.Valid {
			id := favorite.Int64
			s.FavoriteItemID = &id
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voter summaries: %w", err)
	}
	return summaries, nil
}
