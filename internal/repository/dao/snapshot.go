package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSnapshotNotFound = errors.New("no snapshot found")

type FinalSnapshot struct {
	ID              uint `gorm:"primaryKey"`
	StudentID       uint `gorm:"not null;index"`
	AcademicsPoints int  `gorm:"not null"`
	SportsPoints    int  `gorm:"not null"`
	CulturalPoints  int  `gorm:"not null"`
	TechnicalPoints int  `gorm:"not null"`
	SocialPoints    int  `gorm:"not null"`
	CompositePoints int  `gorm:"not null"`
	Rank            int  `gorm:"not null;index"`
	Revealed        bool `gorm:"not null;default:false"`
	CreatedAt       time.Time
}

type SnapshotDAO struct {
	db *gorm.DB
}

func NewSnapshotDAO(db *gorm.DB) *SnapshotDAO {
	return &SnapshotDAO{
		db: db,
	}
}

// InsertBatch replaces any previous snapshot set with the given rows.
// A re-snapshot is the explicit way to change the reveal outcome.
func (d *SnapshotDAO) InsertBatch(ctx context.Context, snapshots []FinalSnapshot) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&FinalSnapshot{}).Error; err != nil {
			return err
		}

		return tx.Create(&snapshots).Error
	})
}

func (d *SnapshotDAO) FindTopRanked(ctx context.Context) (FinalSnapshot, error) {
	var snapshot FinalSnapshot

	result := d.db.WithContext(ctx).Order("rank ASC").First(&snapshot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return FinalSnapshot{}, ErrSnapshotNotFound
		}

		return FinalSnapshot{}, result.Error
	}

	return snapshot, nil
}

func (d *SnapshotDAO) MarkRevealed(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&FinalSnapshot{}).
		Where("id = ?", id).
		Update("revealed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSnapshotNotFound
	}

	return nil
}

func (d *SnapshotDAO) FindRevealed(ctx context.Context) ([]FinalSnapshot, error) {
	var snapshots []FinalSnapshot

	err := d.db.WithContext(ctx).
		Where("revealed = ?", true).
		Order("rank ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}
