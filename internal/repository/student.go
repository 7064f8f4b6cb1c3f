package repository

import (
	"context"
	"fmt"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/repository/dao"
)

var (
	ErrStudentNotFound    = dao.ErrStudentNotFound
	ErrRollNumberExists   = dao.ErrRollNumberExists
	ErrDepartmentNotFound = dao.ErrDepartmentNotFound
)

type StudentDAO interface {
	Insert(ctx context.Context, student dao.Student) (dao.Student, error)
	FindByID(ctx context.Context, id uint) (dao.Student, error)
	FindByIdentifier(ctx context.Context, identifier string) (dao.Student, error)
	FindAll(ctx context.Context) ([]dao.Student, error)
	FindAllRanked(ctx context.Context, departmentID *uint, year *int) ([]dao.Student, error)
	Update(ctx context.Context, student dao.Student) (dao.Student, error)
	Delete(ctx context.Context, id uint) error
}

type StudentRepository struct {
	dao StudentDAO
}

func NewStudentRepository(dao StudentDAO) *StudentRepository {
	return &StudentRepository{
		dao: dao,
	}
}

func (r *StudentRepository) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(student))
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id uint) (domain.Student, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudentRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.Student, error) {
	found, err := r.dao.FindByIdentifier(ctx, identifier)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindByIdentifier -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StudentRepository) FindAll(ctx context.Context) ([]domain.Student, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

// FindAllRanked returns students pre-ordered by the default ranking chain.
func (r *StudentRepository) FindAllRanked(ctx context.Context, departmentID *uint, year *int) ([]domain.Student, error) {
	found, err := r.dao.FindAllRanked(ctx, departmentID, year)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllRanked -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *StudentRepository) Update(ctx context.Context, student domain.Student) (domain.Student, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(student))
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *StudentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *StudentRepository) domainToDao(s domain.Student) dao.Student {
	student := dao.Student{
		ID:         s.ID,
		RollNumber: s.RollNumber,
		Name:       s.Name,
		Year:       s.Year,
		CreatedAt:  s.CreatedAt,
	}
	if s.Department != nil {
		student.DepartmentID = s.Department.ID
	}

	return student
}

func (r *StudentRepository) daoToDomain(s dao.Student) domain.Student {
	student := domain.Student{
		ID:         s.ID,
		RollNumber: s.RollNumber,
		Name:       s.Name,
		Year:       s.Year,
		CreatedAt:  s.CreatedAt,
	}

	if s.Department.ID != 0 {
		student.Department = &domain.Department{
			ID:   s.Department.ID,
			Name: s.Department.Name,
		}
	}

	if s.Total != nil {
		student.Total = &domain.StudentTotal{
			StudentID:       s.Total.StudentID,
			AcademicsPoints: s.Total.AcademicsPoints,
			SportsPoints:    s.Total.SportsPoints,
			CulturalPoints:  s.Total.CulturalPoints,
			TechnicalPoints: s.Total.TechnicalPoints,
			SocialPoints:    s.Total.SocialPoints,
			CompositePoints: s.Total.CompositePoints,
			Wins:            s.Total.Wins,
			UpdatedAt:       s.Total.UpdatedAt,
		}
	}

	return student
}

func (r *StudentRepository) daosToDomain(students []dao.Student) []domain.Student {
	result := make([]domain.Student, len(students))
	for i, s := range students {
		result[i] = r.daoToDomain(s)
	}

	return result
}

type DepartmentDAO interface {
	Insert(ctx context.Context, department dao.Department) (dao.Department, error)
	FindByID(ctx context.Context, id uint) (dao.Department, error)
	FindAll(ctx context.Context) ([]dao.Department, error)
	Update(ctx context.Context, department dao.Department) (dao.Department, error)
	Delete(ctx context.Context, id uint) error
}

type DepartmentRepository struct {
	dao DepartmentDAO
}

func NewDepartmentRepository(dao DepartmentDAO) *DepartmentRepository {
	return &DepartmentRepository{
		dao: dao,
	}
}

func (r *DepartmentRepository) Create(ctx context.Context, department domain.Department) (domain.Department, error) {
	created, err := r.dao.Insert(ctx, dao.Department{Name: department.Name})
	if err != nil {
		return domain.Department{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return domain.Department{ID: created.ID, Name: created.Name}, nil
}

func (r *DepartmentRepository) FindByID(ctx context.Context, id uint) (domain.Department, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Department{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return domain.Department{ID: found.ID, Name: found.Name}, nil
}

func (r *DepartmentRepository) FindAll(ctx context.Context) ([]domain.Department, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	departments := make([]domain.Department, len(found))
	for i, d := range found {
		departments[i] = domain.Department{ID: d.ID, Name: d.Name}
	}

	return departments, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, department domain.Department) (domain.Department, error) {
	updated, err := r.dao.Update(ctx, dao.Department{ID: department.ID, Name: department.Name})
	if err != nil {
		return domain.Department{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return domain.Department{ID: updated.ID, Name: updated.Name}, nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
