package service

import (
	"context"
	"fmt"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository"
)

var ErrSnapshotNotFound = repository.ErrSnapshotNotFound

type SnapshotRepository interface {
	Replace(ctx context.Context, snapshots []domain.FinalSnapshot) error
	FindTopRanked(ctx context.Context) (domain.FinalSnapshot, error)
	MarkRevealed(ctx context.Context, id uint) error
	FindRevealed(ctx context.Context) ([]domain.FinalSnapshot, error)
}

type RevealLeaderboard interface {
	GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}

type RevealStudentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Student, error)
}

// RevealService freezes the leaderboard into snapshot rows and later
// reveals the top-ranked one. Re-taking a snapshot is the only way to
// change the outcome once revealed.
type RevealService struct {
	repo        SnapshotRepository
	leaderboard RevealLeaderboard
	studentRepo RevealStudentRepository
}

func NewRevealService(repo SnapshotRepository, leaderboard RevealLeaderboard, studentRepo RevealStudentRepository) *RevealService {
	return &RevealService{
		repo:        repo,
		leaderboard: leaderboard,
		studentRepo: studentRepo,
	}
}

// TakeSnapshot freezes the current ranking, replacing any earlier snapshot.
func (s *RevealService) TakeSnapshot(ctx context.Context) ([]domain.FinalSnapshot, error) {
	entries, err := s.leaderboard.GetLeaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.leaderboard.GetLeaderboard -> %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrStudentNotFound
	}

	snapshots := make([]domain.FinalSnapshot, len(entries))
	for i, entry := range entries {
		total := totalsOf(entry.Student)
		snapshots[i] = domain.FinalSnapshot{
			StudentID:       entry.Student.ID,
			AcademicsPoints: total.AcademicsPoints,
			SportsPoints:    total.SportsPoints,
			CulturalPoints:  total.CulturalPoints,
			TechnicalPoints: total.TechnicalPoints,
			SocialPoints:    total.SocialPoints,
			CompositePoints: total.CompositePoints,
			Rank:            entry.Rank,
		}
	}

	if err := s.repo.Replace(ctx, snapshots); err != nil {
		return nil, fmt.Errorf("s.repo.Replace -> %w", err)
	}

	return snapshots, nil
}

// RevealWinner marks the top-ranked snapshot revealed and returns the
// winner's aggregate. Calling it again returns the same winner until a new
// snapshot replaces the frozen ranking.
func (s *RevealService) RevealWinner(ctx context.Context) (domain.Student, error) {
	top, err := s.repo.FindTopRanked(ctx)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindTopRanked -> %w", err)
	}

	if !top.Revealed {
		if err := s.repo.MarkRevealed(ctx, top.ID); err != nil {
			return domain.Student{}, fmt.Errorf("s.repo.MarkRevealed -> %w", err)
		}
	}

	winner, err := s.studentRepo.FindByID(ctx, top.StudentID)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}

	if winner.Total != nil {
		winner.Badges = BadgesFor(*winner.Total)
	}

	return winner, nil
}

// GetRevealedSnapshots lists revealed rows only; empty before any reveal.
func (s *RevealService) GetRevealedSnapshots(ctx context.Context) ([]domain.FinalSnapshot, error) {
	snapshots, err := s.repo.FindRevealed(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRevealed -> %w", err)
	}

	if snapshots == nil {
		snapshots = []domain.FinalSnapshot{}
	}

	return snapshots, nil
}
