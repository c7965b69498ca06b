package ports

import (
	"context"

	"github.com/shoevote/api/internal/core/domain"
)

// RankingRepository reads aggregate vote counts. Both queries must use
// left-outer-join semantics: every catalog item appears exactly once,
// zero-vote items included, ordered by favorite count desc, like count
// desc, item id asc.
type RankingRepository interface {
	Tallies(ctx context.Context) ([]domain.ItemTally, error)
	TalliesForVoter(ctx context.Context, voterKey string) ([]domain.GalleryEntry, error)
}

// TallyPage is one page of the ranked results. Page is the 0-based
// index actually served, which may be lower than the one requested
// when the requested index is past the last page.
type TallyPage struct {
	Entries    []domain.ItemTally `json:"entries"`
	Page       int                `json:"page"`
	PageCount  int                `json:"page_count"`
	TotalItems int                `json:"total_items"`
}

// GalleryPage is a TallyPage with the requesting voter's own flags.
type GalleryPage struct {
	Entries    []domain.GalleryEntry `json:"entries"`
	Page       int                   `json:"page"`
	PageCount  int                   `json:"page_count"`
	TotalItems int                   `json:"total_items"`
}

type RankingService interface {
	Rank(ctx context.Context) ([]domain.ItemTally, error)
	Page(ctx context.Context, pageIndex, pageSize int) (*TallyPage, error)
	TopN(ctx context.Context, n int) ([]domain.ItemTally, error)
	Gallery(ctx context.Context, voterKey string, pageIndex, pageSize int) (*GalleryPage, error)
}
