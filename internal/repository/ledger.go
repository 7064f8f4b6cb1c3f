package repository

import (
	"context"
	"fmt"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository/dao"
)

var (
	ErrTransactionNotFound = dao.ErrTransactionNotFound
	ErrAlreadyRegistered   = dao.ErrAlreadyRegistered
)

type LedgerDAO interface {
	InsertTransaction(ctx context.Context, transaction dao.PointTransaction) (dao.PointTransaction, error)
	DeleteTransaction(ctx context.Context, id uint) error
	InsertParticipation(ctx context.Context, participation dao.Participation, transaction dao.PointTransaction) (dao.Participation, dao.PointTransaction, error)
	HasParticipation(ctx context.Context, studentID, eventID uint) (bool, error)
	FindParticipatedEventIDs(ctx context.Context, studentID uint) ([]uint, error)
	FindParticipants(ctx context.Context, eventID uint) ([]dao.Student, error)
	FindTimeline(ctx context.Context, studentID uint) ([]dao.PointTransaction, error)
	FindRecentTransactions(ctx context.Context, studentID uint, limit int) ([]dao.PointTransaction, error)
	FindParticipationLogs(ctx context.Context, limit int) ([]dao.ParticipationLogRow, error)
	CountUnseenNotifications(ctx context.Context) (int64, error)
	MarkAllNotificationsSeen(ctx context.Context) error
}

type LedgerRepository struct {
	dao LedgerDAO
}

func NewLedgerRepository(dao LedgerDAO) *LedgerRepository {
	return &LedgerRepository{
		dao: dao,
	}
}

func (r *LedgerRepository) CreateTransaction(ctx context.Context, transaction domain.PointTransaction) (domain.PointTransaction, error) {
	created, err := r.dao.InsertTransaction(ctx, r.transactionToDao(transaction))
	if err != nil {
		return domain.PointTransaction{}, fmt.Errorf("r.dao.InsertTransaction -> %w", err)
	}

	return r.transactionToDomain(created), nil
}

func (r *LedgerRepository) DeleteTransaction(ctx context.Context, id uint) error {
	if err := r.dao.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteTransaction -> %w", err)
	}

	return nil
}

func (r *LedgerRepository) CreateParticipation(ctx context.Context, participation domain.Participation, transaction domain.PointTransaction) (domain.Participation, domain.PointTransaction, error) {
	p, t, err := r.dao.InsertParticipation(ctx, dao.Participation{
		StudentID: participation.StudentID,
		EventID:   participation.EventID,
	}, r.transactionToDao(transaction))
	if err != nil {
		return domain.Participation{}, domain.PointTransaction{}, fmt.Errorf("r.dao.InsertParticipation -> %w", err)
	}

	return r.participationToDomain(p), r.transactionToDomain(t), nil
}

func (r *LedgerRepository) HasParticipation(ctx context.Context, studentID, eventID uint) (bool, error) {
	has, err := r.dao.HasParticipation(ctx, studentID, eventID)
	if err != nil {
		return false, fmt.Errorf("r.dao.HasParticipation -> %w", err)
	}

	return has, nil
}

func (r *LedgerRepository) FindParticipatedEventIDs(ctx context.Context, studentID uint) ([]uint, error) {
	ids, err := r.dao.FindParticipatedEventIDs(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipatedEventIDs -> %w", err)
	}

	return ids, nil
}

func (r *LedgerRepository) FindParticipants(ctx context.Context, eventID uint) ([]domain.Student, error) {
	found, err := r.dao.FindParticipants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipants -> %w", err)
	}

	students := make([]domain.Student, len(found))
	for i, s := range found {
		students[i] = domain.Student{
			ID:         s.ID,
			RollNumber: s.RollNumber,
			Name:       s.Name,
			Year:       s.Year,
			CreatedAt:  s.CreatedAt,
		}
	}

	return students, nil
}

func (r *LedgerRepository) FindTimeline(ctx context.Context, studentID uint) ([]domain.PointTransaction, error) {
	found, err := r.dao.FindTimeline(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTimeline -> %w", err)
	}

	return r.transactionsToDomain(found), nil
}

func (r *LedgerRepository) FindRecentTransactions(ctx context.Context, studentID uint, limit int) ([]domain.PointTransaction, error) {
	found, err := r.dao.FindRecentTransactions(ctx, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecentTransactions -> %w", err)
	}

	return r.transactionsToDomain(found), nil
}

func (r *LedgerRepository) FindParticipationLogs(ctx context.Context, limit int) ([]domain.ParticipationLog, error) {
	rows, err := r.dao.FindParticipationLogs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipationLogs -> %w", err)
	}

	logs := make([]domain.ParticipationLog, len(rows))
	for i, row := range rows {
		logs[i] = domain.ParticipationLog{
			NotificationID: row.NotificationID,
			StudentName:    row.StudentName,
			EventTitle:     row.EventTitle,
			Timestamp:      row.CreatedAt,
			Seen:           row.Seen,
		}
	}

	return logs, nil
}

func (r *LedgerRepository) CountUnseenNotifications(ctx context.Context) (int64, error) {
	count, err := r.dao.CountUnseenNotifications(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountUnseenNotifications -> %w", err)
	}

	return count, nil
}

func (r *LedgerRepository) MarkAllNotificationsSeen(ctx context.Context) error {
	if err := r.dao.MarkAllNotificationsSeen(ctx); err != nil {
		return fmt.Errorf("r.dao.MarkAllNotificationsSeen -> %w", err)
	}

	return nil
}

func (r *LedgerRepository) transactionToDao(t domain.PointTransaction) dao.PointTransaction {
	return dao.PointTransaction{
		ID:        t.ID,
		StudentID: t.StudentID,
		EventID:   t.EventID,
		Points:    t.Points,
		Category:  string(t.Category),
		Reason:    t.Reason,
		AwardedBy: t.AwardedBy,
	}
}

func (r *LedgerRepository) transactionToDomain(t dao.PointTransaction) domain.PointTransaction {
	return domain.PointTransaction{
		ID:        t.ID,
		StudentID: t.StudentID,
		EventID:   t.EventID,
		Points:    t.Points,
		Category:  domain.Category(t.Category),
		Reason:    t.Reason,
		AwardedBy: t.AwardedBy,
		CreatedAt: t.CreatedAt,
	}
}

func (r *LedgerRepository) transactionsToDomain(transactions []dao.PointTransaction) []domain.PointTransaction {
	result := make([]domain.PointTransaction, len(transactions))
	for i, t := range transactions {
		result[i] = r.transactionToDomain(t)
	}

	return result
}

func (r *LedgerRepository) participationToDomain(p dao.Participation) domain.Participation {
	return domain.Participation{
		ID:        p.ID,
		StudentID: p.StudentID,
		EventID:   p.EventID,
		CreatedAt: p.CreatedAt,
	}
}
