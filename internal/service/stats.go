package service

import (
	"prefixle/internal/repository"

	"go.uber.org/zap"
)

// DefaultRetentionDays is how long finished puzzle states are kept
const DefaultRetentionDays = 30

// StatsService handles statistics and cleanup
type StatsService struct {
	stateRepo     repository.PuzzleStateRepository
	retentionDays int
	logger        *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(stateRepo repository.PuzzleStateRepository, retentionDays int, logger *zap.Logger) *StatsService {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &StatsService{
		stateRepo:     stateRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldData removes puzzle states older than the retention period
func (s *StatsService) CleanupOldData() error {
	s.logger.Info("Starting cleanup of old puzzle states", zap.Int("retention_days", s.retentionDays))

	err := s.stateRepo.CleanOldStates(s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old puzzle states", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}
