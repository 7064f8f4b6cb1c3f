package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository"
)

var (
	ErrTransactionNotFound = repository.ErrTransactionNotFound
	ErrAlreadyRegistered   = repository.ErrAlreadyRegistered
	ErrZeroPoints          = errors.New("points must be a non-zero integer")
	ErrInvalidCategory     = errors.New("invalid category")
)

type LedgerRepository interface {
	CreateTransaction(ctx context.Context, transaction domain.PointTransaction) (domain.PointTransaction, error)
	DeleteTransaction(ctx context.Context, id uint) error
	CreateParticipation(ctx context.Context, participation domain.Participation, transaction domain.PointTransaction) (domain.Participation, domain.PointTransaction, error)
	FindParticipatedEventIDs(ctx context.Context, studentID uint) ([]uint, error)
}

type LedgerStudentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Student, error)
}

type LedgerEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type LedgerService struct {
	repo        LedgerRepository
	studentRepo LedgerStudentRepository
	eventRepo   LedgerEventRepository
}

func NewLedgerService(repo LedgerRepository, studentRepo LedgerStudentRepository, eventRepo LedgerEventRepository) *LedgerService {
	return &LedgerService{
		repo:        repo,
		studentRepo: studentRepo,
		eventRepo:   eventRepo,
	}
}

// AwardPoints appends one ledger entry. Points may be negative (a deduction)
// but never zero. The student, and the event when referenced, must exist.
func (s *LedgerService) AwardPoints(ctx context.Context, transaction domain.PointTransaction) (domain.PointTransaction, error) {
	if transaction.Points == 0 {
		return domain.PointTransaction{}, ErrZeroPoints
	}
	if !transaction.Category.IsValid() {
		return domain.PointTransaction{}, ErrInvalidCategory
	}

	if _, err := s.studentRepo.FindByID(ctx, transaction.StudentID); err != nil {
		return domain.PointTransaction{}, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}

	if transaction.EventID != nil {
		if _, err := s.eventRepo.FindByID(ctx, *transaction.EventID); err != nil {
			return domain.PointTransaction{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
		}
	}

	created, err := s.repo.CreateTransaction(ctx, transaction)
	if err != nil {
		return domain.PointTransaction{}, fmt.Errorf("s.repo.CreateTransaction -> %w", err)
	}

	return created, nil
}

// BulkAwardResult reports which awards landed and which students were
// skipped because they do not exist.
type BulkAwardResult struct {
	Awarded []domain.PointTransaction `json:"awarded"`
	Skipped []uint                    `json:"skipped_student_ids"`
}

// AwardPointsBulk awards the same entry to each listed student. Unknown
// students are skipped and reported; validation failures abort the batch.
func (s *LedgerService) AwardPointsBulk(ctx context.Context, studentIDs []uint, transaction domain.PointTransaction) (BulkAwardResult, error) {
	if transaction.Points == 0 {
		return BulkAwardResult{}, ErrZeroPoints
	}
	if !transaction.Category.IsValid() {
		return BulkAwardResult{}, ErrInvalidCategory
	}

	if transaction.EventID != nil {
		if _, err := s.eventRepo.FindByID(ctx, *transaction.EventID); err != nil {
			return BulkAwardResult{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
		}
	}

	result := BulkAwardResult{
		Awarded: []domain.PointTransaction{},
		Skipped: []uint{},
	}

	for _, studentID := range studentIDs {
		if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
			if errors.Is(err, repository.ErrStudentNotFound) {
				result.Skipped = append(result.Skipped, studentID)
				continue
			}

			return BulkAwardResult{}, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
		}

		entry := transaction
		entry.StudentID = studentID
		created, err := s.repo.CreateTransaction(ctx, entry)
		if err != nil {
			return BulkAwardResult{}, fmt.Errorf("s.repo.CreateTransaction -> %w", err)
		}

		result.Awarded = append(result.Awarded, created)
	}

	return result, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id uint) error {
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteTransaction -> %w", err)
	}

	return nil
}

// Participate registers the student for the event. The participation row,
// its points entry and the admin notification land in one DB transaction.
// A repeat registration surfaces ErrAlreadyRegistered and writes nothing.
func (s *LedgerService) Participate(ctx context.Context, studentID, eventID uint) (domain.ParticipationResult, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return domain.ParticipationResult{}, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.ParticipationResult{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	participation, transaction, err := s.repo.CreateParticipation(ctx,
		domain.Participation{
			StudentID: studentID,
			EventID:   eventID,
		},
		domain.PointTransaction{
			StudentID: studentID,
			EventID:   &event.ID,
			Points:    event.ParticipationPoints,
			Category:  event.Category,
			Reason:    domain.ReasonParticipation,
		})
	if err != nil {
		return domain.ParticipationResult{}, fmt.Errorf("s.repo.CreateParticipation -> %w", err)
	}

	return domain.ParticipationResult{
		Participation: participation,
		Transaction:   &transaction,
	}, nil
}

// ListParticipatedEventIDs returns the ids of every event the student has
// registered for, one id per event.
func (s *LedgerService) ListParticipatedEventIDs(ctx context.Context, studentID uint) ([]uint, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}

	ids, err := s.repo.FindParticipatedEventIDs(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindParticipatedEventIDs -> %w", err)
	}

	if ids == nil {
		ids = []uint{}
	}

	return ids, nil
}
