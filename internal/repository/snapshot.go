package repository

import (
	"context"
	"fmt"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository/dao"
)

var ErrSnapshotNotFound = dao.ErrSnapshotNotFound

type SnapshotDAO interface {
	InsertBatch(ctx context.Context, snapshots []dao.FinalSnapshot) error
	FindTopRanked(ctx context.Context) (dao.FinalSnapshot, error)
	MarkRevealed(ctx context.Context, id uint) error
	FindRevealed(ctx context.Context) ([]dao.FinalSnapshot, error)
}

type SnapshotRepository struct {
	dao SnapshotDAO
}

func NewSnapshotRepository(dao SnapshotDAO) *SnapshotRepository {
	return &SnapshotRepository{
		dao: dao,
	}
}

// Replace drops any previous snapshot set and stores the given one.
func (r *SnapshotRepository) Replace(ctx context.Context, snapshots []domain.FinalSnapshot) error {
	rows := make([]dao.FinalSnapshot, len(snapshots))
	for i, s := range snapshots {
		rows[i] = dao.FinalSnapshot{
			StudentID:       s.StudentID,
			AcademicsPoints: s.AcademicsPoints,
			SportsPoints:    s.SportsPoints,
			CulturalPoints:  s.CulturalPoints,
			TechnicalPoints: s.TechnicalPoints,
			SocialPoints:    s.SocialPoints,
			CompositePoints: s.CompositePoints,
			Rank:            s.Rank,
		}
	}

	if err := r.dao.InsertBatch(ctx, rows); err != nil {
		return fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	return nil
}

func (r *SnapshotRepository) FindTopRanked(ctx context.Context) (domain.FinalSnapshot, error) {
	found, err := r.dao.FindTopRanked(ctx)
	if err != nil {
		return domain.FinalSnapshot{}, fmt.Errorf("r.dao.FindTopRanked -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SnapshotRepository) MarkRevealed(ctx context.Context, id uint) error {
	if err := r.dao.MarkRevealed(ctx, id); err != nil {
		return fmt.Errorf("r.dao.MarkRevealed -> %w", err)
	}

	return nil
}

func (r *SnapshotRepository) FindRevealed(ctx context.Context) ([]domain.FinalSnapshot, error) {
	found, err := r.dao.FindRevealed(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRevealed -> %w", err)
	}

	snapshots := make([]domain.FinalSnapshot, len(found))
	for i, s := range found {
		snapshots[i] = r.daoToDomain(s)
	}

	return snapshots, nil
}

func (r *SnapshotRepository) daoToDomain(s dao.FinalSnapshot) domain.FinalSnapshot {
	return domain.FinalSnapshot{
		ID:              s.ID,
		StudentID:       s.StudentID,
		AcademicsPoints: s.AcademicsPoints,
		SportsPoints:    s.SportsPoints,
		CulturalPoints:  s.CulturalPoints,
		TechnicalPoints: s.TechnicalPoints,
		SocialPoints:    s.SocialPoints,
		CompositePoints: s.CompositePoints,
		Rank:            s.Rank,
		Revealed:        s.Revealed,
		CreatedAt:       s.CreatedAt,
	}
}
