package dao_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sotyapp/backend/internal/pkg/testhelper"
	"github.com/sotyapp/backend/internal/repository/dao"
)

type fixture struct {
	db          *gorm.DB
	students    *dao.StudentDAO
	events      *dao.EventDAO
	ledger      *dao.LedgerDAO
	snapshots   *dao.SnapshotDAO
	department  dao.Department
	defaultYear int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := testhelper.StartPostgres(t)

	f := &fixture{
		db:          db,
		students:    dao.NewStudentDAO(db),
		events:      dao.NewEventDAO(db),
		ledger:      dao.NewLedgerDAO(db),
		snapshots:   dao.NewSnapshotDAO(db),
		defaultYear: 2,
	}

	department, err := dao.NewDepartmentDAO(db).Insert(context.Background(), dao.Department{Name: "Computer Science"})
	require.NoError(t, err)
	f.department = department

	return f
}

func (f *fixture) createStudent(t *testing.T, roll, name string) dao.Student {
	t.Helper()

	student, err := f.students.Insert(context.Background(), dao.Student{
		RollNumber:   roll,
		Name:         name,
		Year:         f.defaultYear,
		DepartmentID: f.department.ID,
	})
	require.NoError(t, err)

	return student
}

func (f *fixture) createEvent(t *testing.T, title, category string, participationPoints int) dao.Event {
	t.Helper()

	event, err := f.events.Insert(context.Background(), dao.Event{
		Title:               title,
		Category:            category,
		ParticipationPoints: participationPoints,
		WinnerPoints:        participationPoints * 2,
	})
	require.NoError(t, err)

	return event
}

func (f *fixture) totalsOf(t *testing.T, studentID uint) dao.StudentTotal {
	t.Helper()

	student, err := f.students.FindByID(context.Background(), studentID)
	require.NoError(t, err)
	require.NotNil(t, student.Total)

	return *student.Total
}

func TestLedgerDAO_InsertTransaction_RecomputesTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "CS-001", "Asha")

	// Worked example: +50 academics, +30 sports, -10 academics.
	entries := []dao.PointTransaction{
		{StudentID: student.ID, Points: 50, Category: "academics", Reason: "quiz winner"},
		{StudentID: student.ID, Points: 30, Category: "sports", Reason: "relay team"},
		{StudentID: student.ID, Points: -10, Category: "academics", Reason: "late submission"},
	}
	for _, entry := range entries {
		_, err := f.ledger.InsertTransaction(ctx, entry)
		require.NoError(t, err)
	}

	total := f.totalsOf(t, student.ID)
	assert.Equal(t, 40, total.AcademicsPoints)
	assert.Equal(t, 30, total.SportsPoints)
	assert.Equal(t, 70, total.CompositePoints)
	assert.Equal(t, 0, total.CulturalPoints)
	assert.Equal(t, 0, total.TechnicalPoints)
	assert.Equal(t, 0, total.SocialPoints)
}

func TestLedgerDAO_InsertTransaction_CountsWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "CS-002", "Bilal")

	_, err := f.ledger.InsertTransaction(ctx, dao.PointTransaction{
		StudentID: student.ID, Points: 20, Category: "technical", Reason: "winner",
	})
	require.NoError(t, err)
	_, err = f.ledger.InsertTransaction(ctx, dao.PointTransaction{
		StudentID: student.ID, Points: 5, Category: "technical", Reason: "participation",
	})
	require.NoError(t, err)

	total := f.totalsOf(t, student.ID)
	assert.Equal(t, 1, total.Wins)
	assert.Equal(t, 25, total.TechnicalPoints)
}

func TestLedgerDAO_InsertParticipation_SecondCallConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "CS-003", "Chitra")
	event := f.createEvent(t, "Hackathon", "technical", 10)

	participate := func() error {
		_, _, err := f.ledger.InsertParticipation(ctx,
			dao.Participation{StudentID: student.ID, EventID: event.ID},
			dao.PointTransaction{
				StudentID: student.ID,
				EventID:   &event.ID,
				Points:    event.ParticipationPoints,
				Category:  event.Category,
				Reason:    "Student opted to participate",
			})
		return err
	}

	require.NoError(t, participate())
	assert.ErrorIs(t, participate(), dao.ErrAlreadyRegistered)

	// One participation row, one transaction, unchanged totals.
	ids, err := f.ledger.FindParticipatedEventIDs(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{event.ID}, ids)

	timeline, err := f.ledger.FindTimeline(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, timeline, 1)

	total := f.totalsOf(t, student.ID)
	assert.Equal(t, 10, total.TechnicalPoints)
	assert.Equal(t, 10, total.CompositePoints)
}

func TestLedgerDAO_FindParticipatedEventIDs_OnePerEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "CS-004", "Dev")

	events := []dao.Event{
		f.createEvent(t, "Debate", "academics", 5),
		f.createEvent(t, "Chess", "academics", 5),
		f.createEvent(t, "Football", "sports", 5),
	}
	for _, event := range events {
		_, _, err := f.ledger.InsertParticipation(ctx,
			dao.Participation{StudentID: student.ID, EventID: event.ID},
			dao.PointTransaction{
				StudentID: student.ID,
				EventID:   &event.ID,
				Points:    event.ParticipationPoints,
				Category:  event.Category,
				Reason:    "Student opted to participate",
			})
		require.NoError(t, err)
	}

	ids, err := f.ledger.FindParticipatedEventIDs(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, ids, len(events))
}

func TestLedgerDAO_MarkAllNotificationsSeen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event := f.createEvent(t, "Quiz", "academics", 5)

	for i, roll := range []string{"CS-010", "CS-011"} {
		student := f.createStudent(t, roll, roll)
		_, _, err := f.ledger.InsertParticipation(ctx,
			dao.Participation{StudentID: student.ID, EventID: event.ID},
			dao.PointTransaction{
				StudentID: student.ID,
				EventID:   &event.ID,
				Points:    event.ParticipationPoints,
				Category:  event.Category,
				Reason:    "Student opted to participate",
			})
		require.NoError(t, err, "participation %d", i)
	}

	count, err := f.ledger.CountUnseenNotifications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, f.ledger.MarkAllNotificationsSeen(ctx))
	// A second call is a no-op.
	require.NoError(t, f.ledger.MarkAllNotificationsSeen(ctx))

	count, err = f.ledger.CountUnseenNotifications(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	logs, err := f.ledger.FindParticipationLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	for _, log := range logs {
		assert.True(t, log.Seen)
	}
}

func TestEventDAO_DeleteCascade_RecomputesTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "CS-020", "Esha")
	event := f.createEvent(t, "Dance Off", "cultural", 15)

	_, _, err := f.ledger.InsertParticipation(ctx,
		dao.Participation{StudentID: student.ID, EventID: event.ID},
		dao.PointTransaction{
			StudentID: student.ID,
			EventID:   &event.ID,
			Points:    event.ParticipationPoints,
			Category:  event.Category,
			Reason:    "Student opted to participate",
		})
	require.NoError(t, err)

	// An unrelated award survives the cascade.
	_, err = f.ledger.InsertTransaction(ctx, dao.PointTransaction{
		StudentID: student.ID, Points: 25, Category: "academics", Reason: "olympiad",
	})
	require.NoError(t, err)

	affected, err := f.events.DeleteCascade(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{student.ID}, affected)

	total := f.totalsOf(t, student.ID)
	assert.Equal(t, 0, total.CulturalPoints)
	assert.Equal(t, 25, total.AcademicsPoints)
	assert.Equal(t, 25, total.CompositePoints)

	ids, err := f.ledger.FindParticipatedEventIDs(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	count, err := f.ledger.CountUnseenNotifications(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSnapshotDAO_RevealFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createStudent(t, "CS-030", "Alice")
	bob := f.createStudent(t, "CS-031", "Bob")

	err := f.snapshots.InsertBatch(ctx, []dao.FinalSnapshot{
		{StudentID: alice.ID, CompositePoints: 120, Rank: 1},
		{StudentID: bob.ID, CompositePoints: 95, Rank: 2},
	})
	require.NoError(t, err)

	top, err := f.snapshots.FindTopRanked(ctx)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, top.StudentID)
	assert.False(t, top.Revealed)

	require.NoError(t, f.snapshots.MarkRevealed(ctx, top.ID))

	revealed, err := f.snapshots.FindRevealed(ctx)
	require.NoError(t, err)
	require.Len(t, revealed, 1)
	assert.Equal(t, alice.ID, revealed[0].StudentID)

	// A fresh snapshot resets the reveal.
	err = f.snapshots.InsertBatch(ctx, []dao.FinalSnapshot{
		{StudentID: bob.ID, CompositePoints: 140, Rank: 1},
	})
	require.NoError(t, err)

	revealed, err = f.snapshots.FindRevealed(ctx)
	require.NoError(t, err)
	assert.Empty(t, revealed)
}
