package service

import (
	"context"
	"fmt"

	"github.com/sotyapp/backend/internal/domain"
)

// defaultLogLimit bounds the admin feed to the most recent entries.
const defaultLogLimit = 50

type NotificationRepository interface {
	FindParticipationLogs(ctx context.Context, limit int) ([]domain.ParticipationLog, error)
	CountUnseenNotifications(ctx context.Context) (int64, error)
	MarkAllNotificationsSeen(ctx context.Context) error
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

// GetParticipationLogs returns the admin feed, most recent first.
func (s *NotificationService) GetParticipationLogs(ctx context.Context, limit int) ([]domain.ParticipationLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}

	logs, err := s.repo.FindParticipationLogs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindParticipationLogs -> %w", err)
	}

	if logs == nil {
		logs = []domain.ParticipationLog{}
	}

	return logs, nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context) (int64, error) {
	count, err := s.repo.CountUnseenNotifications(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountUnseenNotifications -> %w", err)
	}

	return count, nil
}

// MarkAllSeen flips every currently-unseen notification. Entries created
// after the call starts stay unseen. Safe to repeat.
func (s *NotificationService) MarkAllSeen(ctx context.Context) error {
	if err := s.repo.MarkAllNotificationsSeen(ctx); err != nil {
		return fmt.Errorf("s.repo.MarkAllNotificationsSeen -> %w", err)
	}

	return nil
}
