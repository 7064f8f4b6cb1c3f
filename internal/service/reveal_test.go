package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository"
)

type fakeSnapshotRepo struct {
	snapshots []domain.FinalSnapshot
	nextID    uint
}

func (f *fakeSnapshotRepo) Replace(_ context.Context, snapshots []domain.FinalSnapshot) error {
	f.snapshots = nil
	for _, s := range snapshots {
		f.nextID++
		s.ID = f.nextID
		f.snapshots = append(f.snapshots, s)
	}

	return nil
}

func (f *fakeSnapshotRepo) FindTopRanked(_ context.Context) (domain.FinalSnapshot, error) {
	var top *domain.FinalSnapshot
	for i := range f.snapshots {
		if top == nil || f.snapshots[i].Rank < top.Rank {
			top = &f.snapshots[i]
		}
	}
	if top == nil {
		return domain.FinalSnapshot{}, repository.ErrSnapshotNotFound
	}

	return *top, nil
}

func (f *fakeSnapshotRepo) MarkRevealed(_ context.Context, id uint) error {
	for i := range f.snapshots {
		if f.snapshots[i].ID == id {
			f.snapshots[i].Revealed = true
			return nil
		}
	}

	return repository.ErrSnapshotNotFound
}

func (f *fakeSnapshotRepo) FindRevealed(_ context.Context) ([]domain.FinalSnapshot, error) {
	var revealed []domain.FinalSnapshot
	for _, s := range f.snapshots {
		if s.Revealed {
			revealed = append(revealed, s)
		}
	}

	return revealed, nil
}

type staticLeaderboard struct {
	entries []LeaderboardEntry
}

func (s *staticLeaderboard) GetLeaderboard(_ context.Context) ([]LeaderboardEntry, error) {
	return s.entries, nil
}

func newRevealService(entries ...LeaderboardEntry) (*RevealService, *fakeSnapshotRepo) {
	repo := &fakeSnapshotRepo{}
	known := map[uint]bool{}
	for _, e := range entries {
		known[e.Student.ID] = true
	}

	svc := NewRevealService(repo, &staticLeaderboard{entries: entries}, &fakeStudentFinder{known: known})

	return svc, repo
}

func TestRevealService_RevealWinner(t *testing.T) {
	// Snapshot over {A: 120, B: 95} reveals A.
	svc, _ := newRevealService(
		LeaderboardEntry{Rank: 1, Student: studentWith(1, domain.StudentTotal{CompositePoints: 120})},
		LeaderboardEntry{Rank: 2, Student: studentWith(2, domain.StudentTotal{CompositePoints: 95})},
	)

	snapshots, err := svc.TakeSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, 120, snapshots[0].CompositePoints)

	winner, err := svc.RevealWinner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(1), winner.ID)

	// Repeat reveals keep returning the same winner.
	winner, err = svc.RevealWinner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(1), winner.ID)

	revealed, err := svc.GetRevealedSnapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, revealed, 1)
	assert.Equal(t, uint(1), revealed[0].StudentID)
}

func TestRevealService_RevealWithoutSnapshot(t *testing.T) {
	svc, _ := newRevealService(
		LeaderboardEntry{Rank: 1, Student: studentWith(1, domain.StudentTotal{CompositePoints: 10})},
	)

	_, err := svc.RevealWinner(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRevealService_TakeSnapshotEmptyLeaderboard(t *testing.T) {
	svc, _ := newRevealService()

	_, err := svc.TakeSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestRevealService_ResnapshotResetsReveal(t *testing.T) {
	svc, repo := newRevealService(
		LeaderboardEntry{Rank: 1, Student: studentWith(1, domain.StudentTotal{CompositePoints: 120})},
	)

	_, err := svc.TakeSnapshot(context.Background())
	require.NoError(t, err)
	_, err = svc.RevealWinner(context.Background())
	require.NoError(t, err)

	_, err = svc.TakeSnapshot(context.Background())
	require.NoError(t, err)

	revealed, err := svc.GetRevealedSnapshots(context.Background())
	require.NoError(t, err)
	assert.Empty(t, revealed)
	assert.Len(t, repo.snapshots, 1)
}
