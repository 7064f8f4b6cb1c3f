package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/sotyapp/backend/internal/domain"
)

// RankLess orders two students for the leaderboard; it reports whether a
// ranks strictly before b. Both students carry their totals.
type RankLess func(a, b domain.Student) bool

// DefaultRankLess is the documented tie-break chain: composite desc, then
// academics desc, wins desc, technical desc, and finally earliest student id
// so the full order is deterministic.
func DefaultRankLess(a, b domain.Student) bool {
	at, bt := totalsOf(a), totalsOf(b)

	if at.CompositePoints != bt.CompositePoints {
		return at.CompositePoints > bt.CompositePoints
	}
	if at.AcademicsPoints != bt.AcademicsPoints {
		return at.AcademicsPoints > bt.AcademicsPoints
	}
	if at.Wins != bt.Wins {
		return at.Wins > bt.Wins
	}
	if at.TechnicalPoints != bt.TechnicalPoints {
		return at.TechnicalPoints > bt.TechnicalPoints
	}

	return a.ID < b.ID
}

func totalsOf(s domain.Student) domain.StudentTotal {
	if s.Total == nil {
		return domain.StudentTotal{}
	}

	return *s.Total
}

// LeaderboardEntry is one ranked row. Rank starts at 1 and follows the
// position in the sorted order, ties already broken.
type LeaderboardEntry struct {
	Rank    int            `json:"rank"`
	Student domain.Student `json:"student"`
}

type LeaderboardStudentRepository interface {
	FindAllRanked(ctx context.Context, departmentID *uint, year *int) ([]domain.Student, error)
}

type LeaderboardService struct {
	repo LeaderboardStudentRepository
	less RankLess
}

func NewLeaderboardService(repo LeaderboardStudentRepository) *LeaderboardService {
	return &LeaderboardService{
		repo: repo,
		less: DefaultRankLess,
	}
}

// WithRanking swaps the ordering function. Used by the snapshot workflow
// when an alternative ranking is configured.
func (s *LeaderboardService) WithRanking(less RankLess) *LeaderboardService {
	s.less = less

	return s
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	return s.rank(ctx, nil, nil)
}

func (s *LeaderboardService) GetDepartmentLeaderboard(ctx context.Context, departmentID uint) ([]LeaderboardEntry, error) {
	return s.rank(ctx, &departmentID, nil)
}

func (s *LeaderboardService) GetClassLeaderboard(ctx context.Context, year int) ([]LeaderboardEntry, error) {
	return s.rank(ctx, nil, &year)
}

func (s *LeaderboardService) rank(ctx context.Context, departmentID *uint, year *int) ([]LeaderboardEntry, error) {
	students, err := s.repo.FindAllRanked(ctx, departmentID, year)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllRanked -> %w", err)
	}

	sort.SliceStable(students, func(i, j int) bool {
		return s.less(students[i], students[j])
	})

	entries := make([]LeaderboardEntry, len(students))
	for i, student := range students {
		if student.Total != nil {
			student.Badges = BadgesFor(*student.Total)
		}
		entries[i] = LeaderboardEntry{
			Rank:    i + 1,
			Student: student,
		}
	}

	return entries, nil
}
