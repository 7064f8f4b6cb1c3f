package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotyapp/backend/internal/domain"
)

type fakeNotificationRepo struct {
	logs []domain.ParticipationLog
}

func (f *fakeNotificationRepo) FindParticipationLogs(_ context.Context, limit int) ([]domain.ParticipationLog, error) {
	if limit > len(f.logs) {
		limit = len(f.logs)
	}

	return f.logs[:limit], nil
}

func (f *fakeNotificationRepo) CountUnseenNotifications(_ context.Context) (int64, error) {
	var count int64
	for _, log := range f.logs {
		if !log.Seen {
			count++
		}
	}

	return count, nil
}

func (f *fakeNotificationRepo) MarkAllNotificationsSeen(_ context.Context) error {
	for i := range f.logs {
		f.logs[i].Seen = true
	}

	return nil
}

func TestNotificationService_MarkAllSeenThenPoll(t *testing.T) {
	now := time.Now()
	repo := &fakeNotificationRepo{logs: []domain.ParticipationLog{
		{NotificationID: 2, StudentName: "Asha", EventTitle: "Hackathon", Timestamp: now},
		{NotificationID: 1, StudentName: "Bilal", EventTitle: "Debate", Timestamp: now.Add(-time.Hour)},
	}}
	svc := NewNotificationService(repo)
	ctx := context.Background()

	count, err := svc.GetUnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkAllSeen(ctx))

	count, err = svc.GetUnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Polling after mark_seen reports every pre-existing entry as seen.
	logs, err := svc.GetParticipationLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	for _, log := range logs {
		assert.True(t, log.Seen)
	}

	// Idempotent.
	require.NoError(t, svc.MarkAllSeen(ctx))
}

func TestNotificationService_DefaultLimit(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	logs, err := svc.GetParticipationLogs(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}
