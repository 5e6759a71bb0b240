package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/immoconnect/listing-api/internal/core/domain"
	"github.com/immoconnect/listing-api/internal/core/ports"
)

type activityService struct {
	events ports.PropertyEventRepository
	log    zerolog.Logger
}

// NewActivityService returns an ActivityService that writes the audit trail.
func NewActivityService(events ports.PropertyEventRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{events: events, log: log}
}

// Process persists one audit event. Failures here never reach the user: the
// dispatcher logs them and moves on.
func (s *activityService) Process(ctx context.Context, event domain.PropertyEvent) error {
	if err := s.events.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("property_id", event.PropertyID).
		Str("action", string(event.Action)).
		Msg("activity recorded")
	return nil
}
