package service

import (
	"context"
	"fmt"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository"
)

var (
	ErrStudentNotFound    = repository.ErrStudentNotFound
	ErrRollNumberExists   = repository.ErrRollNumberExists
	ErrDepartmentNotFound = repository.ErrDepartmentNotFound
)

// recentTransactionCount caps the transaction list embedded in the
// student aggregate. The full ledger stays behind GetTimeline.
const recentTransactionCount = 10

type StudentRepository interface {
	Create(ctx context.Context, student domain.Student) (domain.Student, error)
	FindByID(ctx context.Context, id uint) (domain.Student, error)
	FindByIdentifier(ctx context.Context, identifier string) (domain.Student, error)
	FindAll(ctx context.Context) ([]domain.Student, error)
	Update(ctx context.Context, student domain.Student) (domain.Student, error)
	Delete(ctx context.Context, id uint) error
}

type StudentLedgerRepository interface {
	FindTimeline(ctx context.Context, studentID uint) ([]domain.PointTransaction, error)
	FindRecentTransactions(ctx context.Context, studentID uint, limit int) ([]domain.PointTransaction, error)
}

type StudentService struct {
	repo       StudentRepository
	ledgerRepo StudentLedgerRepository
}

func NewStudentService(repo StudentRepository, ledgerRepo StudentLedgerRepository) *StudentService {
	return &StudentService{
		repo:       repo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *StudentService) CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	created, err := s.repo.Create(ctx, student)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// GetStudent resolves the identifier (numeric id or roll number) and returns
// the aggregate read model: totals, derived badges, last few transactions.
func (s *StudentService) GetStudent(ctx context.Context, identifier string) (domain.Student, error) {
	student, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindByIdentifier -> %w", err)
	}

	if student.Total != nil {
		student.Badges = BadgesFor(*student.Total)
	}

	transactions, err := s.ledgerRepo.FindRecentTransactions(ctx, student.ID, recentTransactionCount)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.ledgerRepo.FindRecentTransactions -> %w", err)
	}
	student.Transactions = transactions

	return student, nil
}

func (s *StudentService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	students, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return students, nil
}

func (s *StudentService) UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	updated, err := s.repo.Update(ctx, student)
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *StudentService) DeleteStudent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// GetTimeline returns the student's full ledger, most recent first.
func (s *StudentService) GetTimeline(ctx context.Context, identifier string) ([]domain.PointTransaction, error) {
	student, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByIdentifier -> %w", err)
	}

	transactions, err := s.ledgerRepo.FindTimeline(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("s.ledgerRepo.FindTimeline -> %w", err)
	}

	return transactions, nil
}

// GetBreakdown returns per-category totals. A student with no transactions
// gets the zeroed totals row created alongside the student record.
func (s *StudentService) GetBreakdown(ctx context.Context, identifier string) (domain.StudentTotal, error) {
	student, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return domain.StudentTotal{}, fmt.Errorf("s.repo.FindByIdentifier -> %w", err)
	}

	if student.Total == nil {
		return domain.StudentTotal{StudentID: student.ID}, nil
	}

	return *student.Total, nil
}

func (s *StudentService) GetAchievements(ctx context.Context, identifier string) ([]domain.Badge, error) {
	student, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByIdentifier -> %w", err)
	}

	if student.Total == nil {
		return []domain.Badge{}, nil
	}

	badges := BadgesFor(*student.Total)
	if badges == nil {
		badges = []domain.Badge{}
	}

	return badges, nil
}

type DepartmentRepository interface {
	Create(ctx context.Context, department domain.Department) (domain.Department, error)
	FindByID(ctx context.Context, id uint) (domain.Department, error)
	FindAll(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, department domain.Department) (domain.Department, error)
	Delete(ctx context.Context, id uint) error
}

type DepartmentService struct {
	repo DepartmentRepository
}

func NewDepartmentService(repo DepartmentRepository) *DepartmentService {
	return &DepartmentService{
		repo: repo,
	}
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, department domain.Department) (domain.Department, error) {
	created, err := s.repo.Create(ctx, department)
	if err != nil {
		return domain.Department{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *DepartmentService) GetDepartment(ctx context.Context, id uint) (domain.Department, error) {
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Department{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return department, nil
}

func (s *DepartmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	departments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return departments, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, department domain.Department) (domain.Department, error) {
	updated, err := s.repo.Update(ctx, department)
	if err != nil {
		return domain.Department{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
