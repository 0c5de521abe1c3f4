package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qbnb/marketplace-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists each event to the
// audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event. The event has already been accepted
// by a lifecycle operation, so failures here are infrastructure failures.
func (s *auditService) Process(ctx context.Context, event ports.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("audit: insert event: %w", err)
	}

	s.log.Debug().
		Str("entity_id", event.EntityID).
		Str("action", event.Action).
		Msg("audit event recorded")

	return nil
}
