package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoevote/api/internal/core/domain"
)

type fakeRankingRepo struct {
	tallies []domain.ItemTally
	entries []domain.GalleryEntry
}

func (f *fakeRankingRepo) Tallies(_ context.Context) ([]domain.ItemTally, error) {
	return f.tallies, nil
}

func (f *fakeRankingRepo) TalliesForVoter(_ context.Context, _ string) ([]domain.GalleryEntry, error) {
	return f.entries, nil
}

func rankedFixture(n int) []domain.ItemTally {
	tallies := make([]domain.ItemTally, 0, n)
	for i := 0; i < n; i++ {
		tallies = append(tallies, domain.ItemTally{
			ItemID:    int64(i + 1),
			Reference: fmt.Sprintf("shoe-%d.jpg", i+1),
		})
	}
	return tallies
}

func TestPageClampsPastTheEnd(t *testing.T) {
	svc := NewRankingService(&fakeRankingRepo{tallies: rankedFixture(23)})
	ctx := context.Background()

	// 23 items at page size 10: pages 0..2, last page holds 3 items.
	far, err := svc.Page(ctx, 999, 10)
	require.NoError(t, err)
	last, err := svc.Page(ctx, 2, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, far.Page)
	assert.Equal(t, 3, far.PageCount)
	assert.Equal(t, 23, far.TotalItems)
	assert.Equal(t, last.Entries, far.Entries)
	require.Len(t, far.Entries, 3)
	assert.Equal(t, int64(21), far.Entries[0].ItemID)
}

func TestPageNegativeIndexClampsToFirst(t *testing.T) {
	svc := NewRankingService(&fakeRankingRepo{tallies: rankedFixture(5)})

	page, err := svc.Page(context.Background(), -3, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, int64(1), page.Entries[0].ItemID)
}

func TestPageEmptyCatalog(t *testing.T) {
	svc := NewRankingService(&fakeRankingRepo{})

	page, err := svc.Page(context.Background(), 4, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 1, page.PageCount)
	assert.Equal(t, 0, page.TotalItems)
	assert.Empty(t, page.Entries)
}

func TestPageExactBoundary(t *testing.T) {
	svc := NewRankingService(&fakeRankingRepo{tallies: rankedFixture(20)})

	page, err := svc.Page(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.PageCount)
	require.Len(t, page.Entries, 10)
	assert.Equal(t, int64(11), page.Entries[0].ItemID)
}

func TestTopN(t *testing.T) {
	svc := NewRankingService(&fakeRankingRepo{tallies: rankedFixture(4)})
	ctx := context.Background()

	top, err := svc.TopN(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, int64(1), top[0].ItemID)

	// n past the catalog size returns everything.
	top, err = svc.TopN(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, top, 4)

	top, err = svc.TopN(ctx, -1)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestGalleryRequiresVoterKey(t *testing.T) {
	svc := NewRankingService(&fakeRankingRepo{})

	_, err := svc.Gallery(context.Background(), "", 0, 10)
	assert.ErrorIs(t, err, domain.ErrEmptyVoterKey)
}

func TestGalleryPagesLikeStats(t *testing.T) {
	entries := make([]domain.GalleryEntry, 0, 7)
	for i := 0; i < 7; i++ {
		entries = append(entries, domain.GalleryEntry{
			ItemTally: domain.ItemTally{ItemID: int64(i + 1)},
			MyLiked:   i%2 == 0,
		})
	}
	svc := NewRankingService(&fakeRankingRepo{entries: entries})

	page, err := svc.Gallery(context.Background(), "a@x.com", 5, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.PageCount)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, int64(7), page.Entries[0].ItemID)
	assert.True(t, page.Entries[0].MyLiked)
}
