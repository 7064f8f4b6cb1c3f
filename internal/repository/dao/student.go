package dao

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrRollNumberExists   = errors.New("roll number already exists")
	ErrDepartmentNotFound = errors.New("department not found")
)

type Department struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type Student struct {
	ID           uint   `gorm:"primaryKey"`
	RollNumber   string `gorm:"unique;not null;index"`
	Name         string `gorm:"not null"`
	Year         int    `gorm:"not null"`
	DepartmentID uint   `gorm:"not null;index"`

	Department Department `gorm:"foreignKey:DepartmentID"`
	Total      *StudentTotal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StudentTotal is the denormalized running score per student, keyed by the
// student id. Rewritten from the transaction log inside every ledger write.
type StudentTotal struct {
	StudentID       uint `gorm:"primaryKey"`
	AcademicsPoints int  `gorm:"not null;default:0"`
	SportsPoints    int  `gorm:"not null;default:0"`
	CulturalPoints  int  `gorm:"not null;default:0"`
	TechnicalPoints int  `gorm:"not null;default:0"`
	SocialPoints    int  `gorm:"not null;default:0"`
	CompositePoints int  `gorm:"not null;default:0"`
	Wins            int  `gorm:"not null;default:0"`
	UpdatedAt       time.Time
}

type StudentDAO struct {
	db *gorm.DB
}

func NewStudentDAO(db *gorm.DB) *StudentDAO {
	return &StudentDAO{
		db: db,
	}
}

func (d *StudentDAO) Insert(ctx context.Context, student Student) (Student, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var department Department
		if err := tx.First(&department, student.DepartmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartmentNotFound
			}

			return err
		}

		if err := tx.Create(&student).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				strings.Contains(pgErr.Message, "roll_number") {
				return ErrRollNumberExists
			}

			return err
		}

		// Every student gets a zeroed totals row up front so leaderboard
		// joins see them immediately.
		return tx.Create(&StudentTotal{StudentID: student.ID}).Error
	})
	if err != nil {
		return Student{}, err
	}

	return student, nil
}

// FindByIdentifier accepts either the numeric database id or the roll number.
func (d *StudentDAO) FindByIdentifier(ctx context.Context, identifier string) (Student, error) {
	var student Student

	query := d.db.WithContext(ctx).
		Preload("Department").
		Preload("Total")

	if id, err := strconv.ParseUint(identifier, 10, 64); err == nil {
		query = query.Where("id = ?", uint(id))
	} else {
		query = query.Where("roll_number = ?", identifier)
	}

	result := query.First(&student)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindByID(ctx context.Context, id uint) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).
		Preload("Department").
		Preload("Total").
		First(&student, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *StudentDAO) FindAll(ctx context.Context) ([]Student, error) {
	var students []Student

	result := d.db.WithContext(ctx).
		Preload("Department").
		Preload("Total").
		Order("id ASC").
		Find(&students)
	if result.Error != nil {
		return nil, result.Error
	}

	return students, nil
}

func (d *StudentDAO) Update(ctx context.Context, student Student) (Student, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Student
		if err := tx.First(&existing, student.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}

			return err
		}

		var department Department
		if err := tx.First(&department, student.DepartmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartmentNotFound
			}

			return err
		}

		return tx.Model(&existing).Updates(map[string]interface{}{
			"roll_number":   student.RollNumber,
			"name":          student.Name,
			"year":          student.Year,
			"department_id": student.DepartmentID,
		}).Error
	})
	if err != nil {
		return Student{}, err
	}

	return d.FindByID(ctx, student.ID)
}

func (d *StudentDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student Student
		if err := tx.First(&student, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}

			return err
		}

		if err := tx.Where("student_id = ?", id).Delete(&PointTransaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&Participation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&StudentTotal{}).Error; err != nil {
			return err
		}

		return tx.Delete(&student).Error
	})
}

// FindAllRanked returns students joined with totals, pre-sorted by the
// database so the service-level ranking only has to refine ties.
func (d *StudentDAO) FindAllRanked(ctx context.Context, departmentID *uint, year *int) ([]Student, error) {
	var students []Student

	query := d.db.WithContext(ctx).
		Joins("JOIN student_totals ON student_totals.student_id = students.id").
		Preload("Department").
		Preload("Total").
		Order("student_totals.composite_points DESC").
		Order("student_totals.academics_points DESC").
		Order("student_totals.wins DESC").
		Order("student_totals.technical_points DESC").
		Order("students.id ASC")

	if departmentID != nil {
		query = query.Where("students.department_id = ?", *departmentID)
	}
	if year != nil {
		query = query.Where("students.year = ?", *year)
	}

	result := query.Find(&students)
	if result.Error != nil {
		return nil, result.Error
	}

	return students, nil
}

type DepartmentDAO struct {
	db *gorm.DB
}

func NewDepartmentDAO(db *gorm.DB) *DepartmentDAO {
	return &DepartmentDAO{
		db: db,
	}
}

func (d *DepartmentDAO) Insert(ctx context.Context, department Department) (Department, error) {
	result := d.db.WithContext(ctx).Create(&department)
	if result.Error != nil {
		return Department{}, result.Error
	}

	return department, nil
}

func (d *DepartmentDAO) FindByID(ctx context.Context, id uint) (Department, error) {
	var department Department

	result := d.db.WithContext(ctx).First(&department, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Department{}, ErrDepartmentNotFound
		}

		return Department{}, result.Error
	}

	return department, nil
}

func (d *DepartmentDAO) FindAll(ctx context.Context) ([]Department, error) {
	var departments []Department

	result := d.db.WithContext(ctx).Order("id ASC").Find(&departments)
	if result.Error != nil {
		return nil, result.Error
	}

	return departments, nil
}

func (d *DepartmentDAO) Update(ctx context.Context, department Department) (Department, error) {
	result := d.db.WithContext(ctx).Model(&Department{ID: department.ID}).
		Update("name", department.Name)
	if result.Error != nil {
		return Department{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Department{}, ErrDepartmentNotFound
	}

	return d.FindByID(ctx, department.ID)
}

func (d *DepartmentDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}

	return nil
}
