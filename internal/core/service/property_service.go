package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/immoconnect/listing-api/internal/core/domain"
	"github.com/immoconnect/listing-api/internal/core/ports"
)

// MutationGuard serializes mutations per property id. Acquire returns false
// when another mutation on the same id is still in flight.
type MutationGuard interface {
	Acquire(ctx context.Context, propertyID string) (bool, error)
	Release(ctx context.Context, propertyID string) error
}

// ActivityRecorder enqueues audit events without blocking the caller.
type ActivityRecorder interface {
	Record(event domain.PropertyEvent)
}

// PropertyService implements the owner management operations.
type PropertyService struct {
	repo     ports.PropertyRepository
	events   ports.PropertyEventRepository
	guard    MutationGuard
	activity ActivityRecorder
	logger   zerolog.Logger
}

func NewPropertyService(
	repo ports.PropertyRepository,
	events ports.PropertyEventRepository,
	guard MutationGuard,
	activity ActivityRecorder,
	logger zerolog.Logger,
) *PropertyService {
	return &PropertyService{repo: repo, events: events, guard: guard, activity: activity, logger: logger}
}

// ListOwned returns the agent's own properties, newest first, with
// published/draft counters. Scoping happens in the repository query, never
// client-side.
func (s *PropertyService) ListOwned(ctx context.Context, agentID string) (*ports.OwnedListings, error) {
	props, err := s.repo.ListByAgent(ctx, agentID)
	if err != nil {
		s.logger.Error().Err(err).Str("agent_id", agentID).Msg("failed to list owned properties")
		return nil, err
	}

	published := 0
	for _, p := range props {
		if p.IsPublished {
			published++
		}
	}

	return &ports.OwnedListings{
		Properties: props,
		Published:  published,
		Drafts:     len(props) - published,
	}, nil
}

// Create inserts a new property owned by the calling agent.
func (s *PropertyService) Create(ctx context.Context, input ports.CreatePropertyInput) (*domain.Property, error) {
	if input.Role != domain.RoleAgent {
		return nil, domain.ErrForbidden
	}
	if input.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}

	p := &domain.Property{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		City:        input.City,
		AgentID:     input.AgentID,
		IsPublished: input.IsPublished,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("agent_id", input.AgentID).Msg("failed to create property")
		return nil, err
	}

	s.activity.Record(domain.PropertyEvent{
		PropertyID: p.ID,
		AgentID:    p.AgentID,
		Action:     domain.ActionCreated,
		At:         p.CreatedAt,
	})

	s.logger.Info().Str("property_id", p.ID).Str("agent_id", p.AgentID).Str("city", p.City).Msg("property created")
	return p, nil
}

// SetPublished flips only the publication flag. The mutation holds the
// per-id guard for its whole duration; a concurrent mutation on the same id
// fails with ErrMutationInFlight instead of racing.
func (s *PropertyService) SetPublished(ctx context.Context, id string, value bool, agentID string) (*domain.Property, error) {
	release, err := s.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	p, err := s.ownedProperty(ctx, id, agentID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetPublished(ctx, id, value); err != nil {
		s.logger.Error().Err(err).Str("property_id", id).Msg("failed to update publication state")
		return nil, err
	}
	p.IsPublished = value

	action := domain.ActionUnpublished
	if value {
		action = domain.ActionPublished
	}
	s.activity.Record(domain.PropertyEvent{
		PropertyID: id,
		AgentID:    agentID,
		Action:     action,
		At:         time.Now().UTC(),
	})

	return p, nil
}

// Delete removes a property permanently. A failed delete releases the guard
// so the caller can simply confirm again.
func (s *PropertyService) Delete(ctx context.Context, id string, agentID string) error {
	release, err := s.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	if _, err := s.ownedProperty(ctx, id, agentID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("property_id", id).Msg("failed to delete property")
		return err
	}

	s.activity.Record(domain.PropertyEvent{
		PropertyID: id,
		AgentID:    agentID,
		Action:     domain.ActionDeleted,
		At:         time.Now().UTC(),
	})

	s.logger.Info().Str("property_id", id).Str("agent_id", agentID).Msg("property deleted")
	return nil
}

// ListActivity returns the audit trail of one of the agent's own
// properties, oldest first.
func (s *PropertyService) ListActivity(ctx context.Context, id string, agentID string) ([]*domain.PropertyEvent, error) {
	if _, err := s.ownedProperty(ctx, id, agentID); err != nil {
		return nil, err
	}

	events, err := s.events.ListByProperty(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("property_id", id).Msg("failed to list property activity")
		return nil, err
	}
	return events, nil
}

// ownedProperty loads the property and enforces ownership. Non-owners get
// ErrForbidden regardless of their role: the UI gate is convenience, this
// check is the boundary.
func (s *PropertyService) ownedProperty(ctx context.Context, id, agentID string) (*domain.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AgentID != agentID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func (s *PropertyService) acquire(ctx context.Context, id string) (func(), error) {
	ok, err := s.guard.Acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrMutationInFlight
	}
	return func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), id); err != nil {
			s.logger.Warn().Err(err).Str("property_id", id).Msg("failed to release mutation guard")
		}
	}, nil
}
