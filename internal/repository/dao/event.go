package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID                  uint      `gorm:"primaryKey"`
	Title               string    `gorm:"not null"`
	Category            string    `gorm:"not null;index"`
	Date                time.Time `gorm:"not null"`
	ParticipationPoints int       `gorm:"not null;default:0"`
	WinnerPoints        int       `gorm:"not null;default:0"`
	Description         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("date DESC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	var existing Event
	if err := d.db.WithContext(ctx).First(&existing, event.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, err
	}

	result := d.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
		"title":                event.Title,
		"category":             event.Category,
		"date":                 event.Date,
		"participation_points": event.ParticipationPoints,
		"winner_points":        event.WinnerPoints,
		"description":          event.Description,
	})
	if result.Error != nil {
		return Event{}, result.Error
	}

	return d.FindByID(ctx, event.ID)
}

// DeleteCascade removes the event together with every transaction,
// participation and notification that references it, then recomputes the
// totals of each affected student. All inside one DB transaction.
func (d *EventDAO) DeleteCascade(ctx context.Context, id uint) ([]uint, error) {
	var affected []uint

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}

			return err
		}

		if err := tx.Model(&PointTransaction{}).
			Distinct("student_id").
			Where("event_id = ?", id).
			Pluck("student_id", &affected).Error; err != nil {
			return err
		}

		if err := tx.Exec(`DELETE FROM admin_notifications WHERE point_transaction_id IN
			(SELECT id FROM point_transactions WHERE event_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&PointTransaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&Participation{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&event).Error; err != nil {
			return err
		}

		for _, studentID := range affected {
			if err := recalculateTotals(tx, studentID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return affected, nil
}
