package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotyapp/backend/internal/domain"
)

type fakeRankedRepo struct {
	students []domain.Student
}

func (f *fakeRankedRepo) FindAllRanked(_ context.Context, departmentID *uint, year *int) ([]domain.Student, error) {
	var out []domain.Student
	for _, s := range f.students {
		if departmentID != nil && (s.Department == nil || s.Department.ID != *departmentID) {
			continue
		}
		if year != nil && s.Year != *year {
			continue
		}
		out = append(out, s)
	}

	return out, nil
}

func studentWith(id uint, total domain.StudentTotal) domain.Student {
	total.StudentID = id

	return domain.Student{
		ID:    id,
		Total: &total,
	}
}

func TestDefaultRankLess_TieBreakChain(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Student
		want bool
	}{
		{
			name: "higher composite wins",
			a:    studentWith(1, domain.StudentTotal{CompositePoints: 100}),
			b:    studentWith(2, domain.StudentTotal{CompositePoints: 90}),
			want: true,
		},
		{
			name: "composite tie falls to academics",
			a:    studentWith(1, domain.StudentTotal{CompositePoints: 100, AcademicsPoints: 60}),
			b:    studentWith(2, domain.StudentTotal{CompositePoints: 100, AcademicsPoints: 40}),
			want: true,
		},
		{
			name: "academics tie falls to wins",
			a:    studentWith(1, domain.StudentTotal{CompositePoints: 100, AcademicsPoints: 50, Wins: 2}),
			b:    studentWith(2, domain.StudentTotal{CompositePoints: 100, AcademicsPoints: 50, Wins: 1}),
			want: true,
		},
		{
			name: "wins tie falls to technical",
			a:    studentWith(1, domain.StudentTotal{CompositePoints: 100, TechnicalPoints: 30}),
			b:    studentWith(2, domain.StudentTotal{CompositePoints: 100, TechnicalPoints: 20}),
			want: true,
		},
		{
			name: "full tie falls to earliest id",
			a:    studentWith(2, domain.StudentTotal{CompositePoints: 100}),
			b:    studentWith(1, domain.StudentTotal{CompositePoints: 100}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultRankLess(tt.a, tt.b))
		})
	}
}

func TestLeaderboardService_GetLeaderboard(t *testing.T) {
	repo := &fakeRankedRepo{students: []domain.Student{
		studentWith(1, domain.StudentTotal{CompositePoints: 95}),
		studentWith(2, domain.StudentTotal{CompositePoints: 120, AcademicsPoints: 60}),
		studentWith(3, domain.StudentTotal{CompositePoints: 95}),
	}}

	entries, err := NewLeaderboardService(repo).GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, uint(2), entries[0].Student.ID)
	assert.Equal(t, 1, entries[0].Rank)
	// Tied composites resolve to the earlier student id.
	assert.Equal(t, uint(1), entries[1].Student.ID)
	assert.Equal(t, uint(3), entries[2].Student.ID)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestLeaderboardService_BadgesAttached(t *testing.T) {
	repo := &fakeRankedRepo{students: []domain.Student{
		studentWith(1, domain.StudentTotal{AcademicsPoints: 60, CompositePoints: 110}),
	}}

	entries, err := NewLeaderboardService(repo).GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	names := make([]string, 0, len(entries[0].Student.Badges))
	for _, badge := range entries[0].Student.Badges {
		names = append(names, badge.Name)
	}
	assert.Contains(t, names, "Scholar")
	assert.Contains(t, names, "Centurion")
}

func TestLeaderboardService_WithRanking(t *testing.T) {
	repo := &fakeRankedRepo{students: []domain.Student{
		studentWith(1, domain.StudentTotal{SportsPoints: 10, CompositePoints: 50}),
		studentWith(2, domain.StudentTotal{SportsPoints: 40, CompositePoints: 40}),
	}}

	sportsFirst := func(a, b domain.Student) bool {
		return totalsOf(a).SportsPoints > totalsOf(b).SportsPoints
	}

	entries, err := NewLeaderboardService(repo).WithRanking(sportsFirst).GetLeaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(2), entries[0].Student.ID)
}

func TestLeaderboardService_Filters(t *testing.T) {
	cs := &domain.Department{ID: 1, Name: "CS"}
	me := &domain.Department{ID: 2, Name: "ME"}
	repo := &fakeRankedRepo{students: []domain.Student{
		{ID: 1, Year: 2, Department: cs, Total: &domain.StudentTotal{CompositePoints: 50}},
		{ID: 2, Year: 3, Department: cs, Total: &domain.StudentTotal{CompositePoints: 70}},
		{ID: 3, Year: 2, Department: me, Total: &domain.StudentTotal{CompositePoints: 90}},
	}}
	svc := NewLeaderboardService(repo)

	byDept, err := svc.GetDepartmentLeaderboard(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, byDept, 2)
	assert.Equal(t, uint(2), byDept[0].Student.ID)

	byYear, err := svc.GetClassLeaderboard(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, byYear, 2)
	assert.Equal(t, uint(3), byYear[0].Student.ID)
}
