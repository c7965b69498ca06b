package services

import (
	"context"
	"fmt"

	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

const DefaultPageSize = 12

type rankingService struct {
	rankRepo ports.RankingRepository
}

func NewRankingService(rankRepo ports.RankingRepository) ports.RankingService {
	return &rankingService{
		rankRepo: rankRepo,
	}
}

func (s *rankingService) Rank(ctx context.Context) ([]domain.ItemTally, error) {
	tallies, err := s.rankRepo.Tallies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rank items: %w", err)
	}
	return tallies, nil
}

func (s *rankingService) Page(ctx context.Context, pageIndex, pageSize int) (*ports.TallyPage, error) {
	ranked, err := s.Rank(ctx)
	if err != nil {
		return nil, err
	}

	page, pageCount := clampPage(pageIndex, pageSize, len(ranked))
	lo, hi := pageBounds(page, pageSize, len(ranked))

	return &ports.TallyPage{
		Entries:    ranked[lo:hi],
		Page:       page,
		PageCount:  pageCount,
		TotalItems: len(ranked),
	}, nil
}

func (s *rankingService) TopN(ctx context.Context, n int) ([]domain.ItemTally, error) {
	if n < 0 {
		n = 0
	}
	ranked, err := s.Rank(ctx)
	if err != nil {
		return nil, err
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n], nil
}

func (s *rankingService) Gallery(ctx context.Context, voterKey string, pageIndex, pageSize int) (*ports.GalleryPage, error) {
	if voterKey == "" {
		return nil, domain.ErrEmptyVoterKey
	}

	entries, err := s.rankRepo.TalliesForVoter(ctx, voterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build gallery: %w", err)
	}

	page, pageCount := clampPage(pageIndex, pageSize, len(entries))
	lo, hi := pageBounds(page, pageSize, len(entries))

	return &ports.GalleryPage{
		Entries:    entries[lo:hi],
		Page:       page,
		PageCount:  pageCount,
		TotalItems: len(entries),
	}, nil
}

// clampPage maps any requested 0-based page index onto a valid one.
// When the index is past the last page (the item count shrank under
// the caller), the last page is served instead of an empty one.
func clampPage(pageIndex, pageSize, total int) (page, pageCount int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pageCount = (total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}
	page = pageIndex
	if page < 0 {
		page = 0
	}
	if page > pageCount-1 {
		page = pageCount - 1
	}
	return page, pageCount
}

func pageBounds(page, pageSize, total int) (lo, hi int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	lo = page * pageSize
	if lo > total {
		lo = total
	}
	hi = lo + pageSize
	if hi > total {
		hi = total
	}
	return lo, hi
}
