package repository

import (
	"context"
	"fmt"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	DeleteCascade(ctx context.Context, id uint) ([]uint, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = r.daoToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// Delete cascades to the event's transactions, participations and
// notifications, and returns the IDs of students whose totals changed.
func (r *EventRepository) Delete(ctx context.Context, id uint) ([]uint, error) {
	affected, err := r.dao.DeleteCascade(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("r.dao.DeleteCascade -> %w", err)
	}

	return affected, nil
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                  e.ID,
		Title:               e.Title,
		Category:            string(e.Category),
		Date:                e.Date,
		ParticipationPoints: e.ParticipationPoints,
		WinnerPoints:        e.WinnerPoints,
		Description:         e.Description,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:                  e.ID,
		Title:               e.Title,
		Category:            domain.Category(e.Category),
		Date:                e.Date,
		ParticipationPoints: e.ParticipationPoints,
		WinnerPoints:        e.WinnerPoints,
		Description:         e.Description,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}
