package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository"
)

type fakeStudentRepo struct {
	students map[string]domain.Student
}

func (f *fakeStudentRepo) Create(_ context.Context, s domain.Student) (domain.Student, error) {
	s.ID = uint(len(f.students) + 1)
	f.students[s.RollNumber] = s

	return s, nil
}

func (f *fakeStudentRepo) FindByID(_ context.Context, id uint) (domain.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}

	return domain.Student{}, repository.ErrStudentNotFound
}

func (f *fakeStudentRepo) FindByIdentifier(_ context.Context, identifier string) (domain.Student, error) {
	if s, ok := f.students[identifier]; ok {
		return s, nil
	}

	return domain.Student{}, repository.ErrStudentNotFound
}

func (f *fakeStudentRepo) FindAll(_ context.Context) ([]domain.Student, error) {
	var out []domain.Student
	for _, s := range f.students {
		out = append(out, s)
	}

	return out, nil
}

func (f *fakeStudentRepo) Update(_ context.Context, s domain.Student) (domain.Student, error) {
	return s, nil
}

func (f *fakeStudentRepo) Delete(_ context.Context, _ uint) error {
	return nil
}

type fakeTimelineRepo struct {
	transactions []domain.PointTransaction
}

func (f *fakeTimelineRepo) FindTimeline(_ context.Context, _ uint) ([]domain.PointTransaction, error) {
	return f.transactions, nil
}

func (f *fakeTimelineRepo) FindRecentTransactions(_ context.Context, _ uint, limit int) ([]domain.PointTransaction, error) {
	if limit > len(f.transactions) {
		limit = len(f.transactions)
	}

	return f.transactions[:limit], nil
}

func TestStudentService_GetStudent_Aggregate(t *testing.T) {
	repo := &fakeStudentRepo{students: map[string]domain.Student{
		"CS-001": {
			ID:         1,
			RollNumber: "CS-001",
			Name:       "Asha",
			Total:      &domain.StudentTotal{StudentID: 1, AcademicsPoints: 60, CompositePoints: 60},
		},
	}}
	ledger := &fakeTimelineRepo{transactions: []domain.PointTransaction{
		{ID: 2, StudentID: 1, Points: 10, Category: domain.CategoryAcademics},
		{ID: 1, StudentID: 1, Points: 50, Category: domain.CategoryAcademics},
	}}

	student, err := NewStudentService(repo, ledger).GetStudent(context.Background(), "CS-001")
	require.NoError(t, err)

	assert.Len(t, student.Transactions, 2)
	assert.Equal(t, []string{"Scholar"}, badgeNames(student.Badges))
}

func TestStudentService_GetStudent_NotFound(t *testing.T) {
	repo := &fakeStudentRepo{students: map[string]domain.Student{}}
	svc := NewStudentService(repo, &fakeTimelineRepo{})

	_, err := svc.GetStudent(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentService_GetBreakdown_ZeroTotals(t *testing.T) {
	repo := &fakeStudentRepo{students: map[string]domain.Student{
		"CS-002": {ID: 2, RollNumber: "CS-002", Name: "Bilal"},
	}}
	svc := NewStudentService(repo, &fakeTimelineRepo{})

	breakdown, err := svc.GetBreakdown(context.Background(), "CS-002")
	require.NoError(t, err)

	assert.Equal(t, uint(2), breakdown.StudentID)
	for _, category := range domain.Categories {
		assert.Zero(t, breakdown.CategoryPoints(category))
	}
	assert.Zero(t, breakdown.CompositePoints)
}

func TestStudentService_GetAchievements_NoTotals(t *testing.T) {
	repo := &fakeStudentRepo{students: map[string]domain.Student{
		"CS-003": {ID: 3, RollNumber: "CS-003"},
	}}
	svc := NewStudentService(repo, &fakeTimelineRepo{})

	badges, err := svc.GetAchievements(context.Background(), "CS-003")
	require.NoError(t, err)
	assert.NotNil(t, badges)
	assert.Empty(t, badges)
}
