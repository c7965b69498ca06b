package ports

import (
	"context"

	"github.com/shoevote/api/internal/core/domain"
)

type ExportRepository interface {
	// ListRecords returns all vote records carrying at least one set
	// flag; zero-flag rows are physically possible and are skipped.
	ListRecords(ctx context.Context) ([]domain.VoteRecord, error)
	VoterSummaries(ctx context.Context) ([]domain.VoterSummary, error)
}

// ExportService is the read-only query surface for report export.
// Formatting belongs to the caller.
type ExportService interface {
	Records(ctx context.Context) ([]domain.VoteRecord, error)
	VoterSummaries(ctx context.Context) ([]domain.VoterSummary, error)
}
