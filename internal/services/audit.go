package services

import (
	"context"

	"github.com/kjdelacruz/stagetally/internal/logger"
	"github.com/kjdelacruz/stagetally/internal/models"
	"github.com/kjdelacruz/stagetally/internal/repository"
)

// AuditService exposes the append-only audit trail
type AuditService struct {
	log  logger.Logger
	repo repository.AuditRepository
}

// NewAuditService creates a new AuditService
func NewAuditService(log logger.Logger, repo repository.AuditRepository) *AuditService {
	return &AuditService{log: log, repo: repo}
}

// Record appends one audit entry. Audit failures are logged but never fail
// the operation that produced them.
func (s *AuditService) Record(ctx context.Context, actorID int64, action, detail string) {
	if err := s.repo.AppendAudit(ctx, actorID, action, detail); err != nil {
		s.log.Error("Failed to write audit entry", "action", action, "error", err)
	}
}

// Recent returns the newest audit entries
func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	return s.repo.ListAudit(ctx, limit)
}
