package service

import (
	"context"
	"fmt"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository"
)

var ErrEventNotFound = repository.ErrEventNotFound

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) ([]uint, error)
}

type EventLedgerRepository interface {
	FindParticipants(ctx context.Context, eventID uint) ([]domain.Student, error)
}

type EventService struct {
	repo       EventRepository
	ledgerRepo EventLedgerRepository
}

func NewEventService(repo EventRepository, ledgerRepo EventLedgerRepository) *EventService {
	return &EventService{
		repo:       repo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteEvent cascades to the event's ledger entries and participations.
// Returns the IDs of students whose totals were recomputed.
func (s *EventService) DeleteEvent(ctx context.Context, id uint) ([]uint, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return affected, nil
}

func (s *EventService) GetParticipants(ctx context.Context, eventID uint) ([]domain.Student, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	students, err := s.ledgerRepo.FindParticipants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.ledgerRepo.FindParticipants -> %w", err)
	}

	return students, nil
}
