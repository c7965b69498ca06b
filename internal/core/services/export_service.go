package services

import (
	"context"
	"fmt"

	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

type exportService struct {
	exportRepo ports.ExportRepository
}

func NewExportService(exportRepo ports.ExportRepository) ports.ExportService {
	return &exportService{
		exportRepo: exportRepo,
	}
}

func (s *exportService) Records(ctx context.Context) ([]domain.VoteRecord, error) {
	records, err := s.exportRepo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vote records: %w", err)
	}
	return records, nil
}

func (s *exportService) VoterSummaries(ctx context.Context) ([]domain.VoterSummary, error) {
	summaries, err := s.exportRepo.VoterSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize voters: %w", err)
	}
	return summaries, nil
}
