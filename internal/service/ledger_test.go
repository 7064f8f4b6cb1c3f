package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository"
)

type fakeLedgerRepo struct {
	transactions   []domain.PointTransaction
	participations map[[2]uint]bool
	nextID         uint
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		participations: map[[2]uint]bool{},
	}
}

func (f *fakeLedgerRepo) CreateTransaction(_ context.Context, t domain.PointTransaction) (domain.PointTransaction, error) {
	f.nextID++
	t.ID = f.nextID
	f.transactions = append(f.transactions, t)

	return t, nil
}

func (f *fakeLedgerRepo) DeleteTransaction(_ context.Context, id uint) error {
	for i, t := range f.transactions {
		if t.ID == id {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}

	return repository.ErrTransactionNotFound
}

func (f *fakeLedgerRepo) CreateParticipation(ctx context.Context, p domain.Participation, t domain.PointTransaction) (domain.Participation, domain.PointTransaction, error) {
	key := [2]uint{p.StudentID, p.EventID}
	if f.participations[key] {
		return domain.Participation{}, domain.PointTransaction{}, repository.ErrAlreadyRegistered
	}
	f.participations[key] = true

	created, _ := f.CreateTransaction(ctx, t)
	p.ID = created.ID

	return p, created, nil
}

func (f *fakeLedgerRepo) FindParticipatedEventIDs(_ context.Context, studentID uint) ([]uint, error) {
	var ids []uint
	for key := range f.participations {
		if key[0] == studentID {
			ids = append(ids, key[1])
		}
	}

	return ids, nil
}

type fakeStudentFinder struct {
	known map[uint]bool
}

func (f *fakeStudentFinder) FindByID(_ context.Context, id uint) (domain.Student, error) {
	if !f.known[id] {
		return domain.Student{}, repository.ErrStudentNotFound
	}

	return domain.Student{ID: id}, nil
}

type fakeEventFinder struct {
	events map[uint]domain.Event
}

func (f *fakeEventFinder) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func newLedgerService(studentIDs []uint, events ...domain.Event) (*LedgerService, *fakeLedgerRepo) {
	repo := newFakeLedgerRepo()

	students := &fakeStudentFinder{known: map[uint]bool{}}
	for _, id := range studentIDs {
		students.known[id] = true
	}

	eventFinder := &fakeEventFinder{events: map[uint]domain.Event{}}
	for _, e := range events {
		eventFinder.events[e.ID] = e
	}

	return NewLedgerService(repo, students, eventFinder), repo
}

func TestLedgerService_AwardPoints_RejectsZeroForEveryCategory(t *testing.T) {
	svc, repo := newLedgerService([]uint{1})

	for _, category := range domain.Categories {
		_, err := svc.AwardPoints(context.Background(), domain.PointTransaction{
			StudentID: 1,
			Points:    0,
			Category:  category,
		})
		assert.ErrorIs(t, err, ErrZeroPoints, "category %s", category)
	}
	assert.Empty(t, repo.transactions)
}

func TestLedgerService_AwardPoints_RejectsUnknownCategory(t *testing.T) {
	svc, _ := newLedgerService([]uint{1})

	_, err := svc.AwardPoints(context.Background(), domain.PointTransaction{
		StudentID: 1,
		Points:    10,
		Category:  "arts",
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestLedgerService_AwardPoints_UnknownStudent(t *testing.T) {
	svc, _ := newLedgerService(nil)

	_, err := svc.AwardPoints(context.Background(), domain.PointTransaction{
		StudentID: 42,
		Points:    10,
		Category:  domain.CategorySports,
	})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestLedgerService_AwardPoints_UnknownEvent(t *testing.T) {
	svc, _ := newLedgerService([]uint{1})

	missing := uint(99)
	_, err := svc.AwardPoints(context.Background(), domain.PointTransaction{
		StudentID: 1,
		EventID:   &missing,
		Points:    10,
		Category:  domain.CategorySports,
	})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestLedgerService_AwardPoints_AllowsNegativePoints(t *testing.T) {
	svc, repo := newLedgerService([]uint{1})

	created, err := svc.AwardPoints(context.Background(), domain.PointTransaction{
		StudentID: 1,
		Points:    -10,
		Category:  domain.CategoryAcademics,
		Reason:    "late submission",
	})
	require.NoError(t, err)
	assert.Equal(t, -10, created.Points)
	assert.Len(t, repo.transactions, 1)
}

func TestLedgerService_AwardPointsBulk_SkipsMissingStudents(t *testing.T) {
	svc, repo := newLedgerService([]uint{1, 3})

	result, err := svc.AwardPointsBulk(context.Background(), []uint{1, 2, 3}, domain.PointTransaction{
		Points:   5,
		Category: domain.CategorySocial,
		Reason:   "volunteering",
	})
	require.NoError(t, err)

	assert.Len(t, result.Awarded, 2)
	assert.Equal(t, []uint{2}, result.Skipped)
	assert.Len(t, repo.transactions, 2)
	assert.Equal(t, uint(1), result.Awarded[0].StudentID)
	assert.Equal(t, uint(3), result.Awarded[1].StudentID)
}

func TestLedgerService_Participate_CreatesTransactionFromEvent(t *testing.T) {
	event := domain.Event{
		ID:                  7,
		Category:            domain.CategoryTechnical,
		ParticipationPoints: 10,
	}
	svc, repo := newLedgerService([]uint{1}, event)

	result, err := svc.Participate(context.Background(), 1, event.ID)
	require.NoError(t, err)

	require.NotNil(t, result.Transaction)
	assert.Equal(t, 10, result.Transaction.Points)
	assert.Equal(t, domain.CategoryTechnical, result.Transaction.Category)
	assert.Equal(t, domain.ReasonParticipation, result.Transaction.Reason)
	assert.Len(t, repo.transactions, 1)
}

func TestLedgerService_Participate_SecondCallConflicts(t *testing.T) {
	event := domain.Event{ID: 7, Category: domain.CategorySports, ParticipationPoints: 5}
	svc, repo := newLedgerService([]uint{1}, event)

	_, err := svc.Participate(context.Background(), 1, event.ID)
	require.NoError(t, err)

	_, err = svc.Participate(context.Background(), 1, event.ID)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Len(t, repo.transactions, 1)
}

func TestLedgerService_ListParticipatedEventIDs(t *testing.T) {
	events := []domain.Event{
		{ID: 1, Category: domain.CategorySports, ParticipationPoints: 5},
		{ID: 2, Category: domain.CategoryCultural, ParticipationPoints: 5},
	}
	svc, _ := newLedgerService([]uint{1}, events...)

	ids, err := svc.ListParticipatedEventIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)

	for _, event := range events {
		_, err = svc.Participate(context.Background(), 1, event.ID)
		require.NoError(t, err)
	}

	ids, err = svc.ListParticipatedEventIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, ids, len(events))
}
