package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyRegistered   = errors.New("already registered for this event")
)

// PointTransaction rows are append-only. They are deleted only by the
// event-deletion cascade and the explicit admin delete, both of which
// recompute the affected totals in the same DB transaction.
type PointTransaction struct {
	ID        uint   `gorm:"primaryKey"`
	StudentID uint   `gorm:"not null;index"`
	EventID   *uint  `gorm:"index"`
	Points    int    `gorm:"not null"`
	Category  string `gorm:"not null;index"`
	Reason    string
	AwardedBy *uint
	CreatedAt time.Time `gorm:"not null;index"`
}

type Participation struct {
	ID        uint `gorm:"primaryKey"`
	StudentID uint `gorm:"not null;uniqueIndex:idx_participations_student_event"`
	EventID   uint `gorm:"not null;uniqueIndex:idx_participations_student_event"`
	CreatedAt time.Time
}

type AdminNotification struct {
	ID                 uint `gorm:"primaryKey"`
	PointTransactionID uint `gorm:"unique;not null"`
	Seen               bool `gorm:"not null;default:false"`
	CreatedAt          time.Time
}

type LedgerDAO struct {
	db *gorm.DB
}

func NewLedgerDAO(db *gorm.DB) *LedgerDAO {
	return &LedgerDAO{
		db: db,
	}
}

// recalculateTotals rewrites a student's denormalized totals from the
// transaction log. Must run inside the same DB transaction as the ledger
// write so stored totals can never drift from the log.
func recalculateTotals(tx *gorm.DB, studentID uint) error {
	type categorySum struct {
		Category string
		Total    int
	}

	var sums []categorySum
	err := tx.Model(&PointTransaction{}).
		Select("category, COALESCE(SUM(points), 0) AS total").
		Where("student_id = ?", studentID).
		Group("category").
		Scan(&sums).Error
	if err != nil {
		return err
	}

	var wins int64
	err = tx.Model(&PointTransaction{}).
		Where("student_id = ? AND reason = ?", studentID, "winner").
		Count(&wins).Error
	if err != nil {
		return err
	}

	total := StudentTotal{StudentID: studentID, Wins: int(wins), UpdatedAt: time.Now()}
	for _, s := range sums {
		switch s.Category {
		case "academics":
			total.AcademicsPoints = s.Total
		case "sports":
			total.SportsPoints = s.Total
		case "cultural":
			total.CulturalPoints = s.Total
		case "technical":
			total.TechnicalPoints = s.Total
		case "social":
			total.SocialPoints = s.Total
		}
		total.CompositePoints += s.Total
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}},
		UpdateAll: true,
	}).Create(&total).Error
}

// lockStudent takes a row lock on the student so concurrent ledger writes
// for the same student serialize. No cross-student locking.
func lockStudent(tx *gorm.DB, studentID uint) error {
	var student Student
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&student, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStudentNotFound
	}

	return err
}

func (d *LedgerDAO) InsertTransaction(ctx context.Context, transaction PointTransaction) (PointTransaction, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockStudent(tx, transaction.StudentID); err != nil {
			return err
		}

		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		return recalculateTotals(tx, transaction.StudentID)
	})
	if err != nil {
		return PointTransaction{}, err
	}

	return transaction, nil
}

func (d *LedgerDAO) DeleteTransaction(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transaction PointTransaction
		if err := tx.First(&transaction, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}

			return err
		}

		if err := lockStudent(tx, transaction.StudentID); err != nil {
			return err
		}

		if err := tx.Where("point_transaction_id = ?", id).
			Delete(&AdminNotification{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&transaction).Error; err != nil {
			return err
		}

		return recalculateTotals(tx, transaction.StudentID)
	})
}

// InsertParticipation writes the participation row, its ledger entry and
// the admin notification atomically. The composite unique index rejects
// duplicates; the race between two first calls is settled by Postgres,
// not by a read-then-write check.
func (d *LedgerDAO) InsertParticipation(ctx context.Context, participation Participation, transaction PointTransaction) (Participation, PointTransaction, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockStudent(tx, participation.StudentID); err != nil {
			return err
		}

		if err := tx.Create(&participation).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyRegistered
			}

			return err
		}

		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		notification := AdminNotification{
			PointTransactionID: transaction.ID,
			Seen:               false,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		return recalculateTotals(tx, participation.StudentID)
	})
	if err != nil {
		return Participation{}, PointTransaction{}, err
	}

	return participation, transaction, nil
}

func (d *LedgerDAO) HasParticipation(ctx context.Context, studentID, eventID uint) (bool, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&Participation{}).
		Where("student_id = ? AND event_id = ?", studentID, eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (d *LedgerDAO) FindParticipatedEventIDs(ctx context.Context, studentID uint) ([]uint, error) {
	var eventIDs []uint

	err := d.db.WithContext(ctx).Model(&Participation{}).
		Where("student_id = ?", studentID).
		Order("event_id ASC").
		Pluck("event_id", &eventIDs).Error
	if err != nil {
		return nil, err
	}

	return eventIDs, nil
}

func (d *LedgerDAO) FindParticipants(ctx context.Context, eventID uint) ([]Student, error) {
	var students []Student

	err := d.db.WithContext(ctx).
		Joins("JOIN participations ON participations.student_id = students.id").
		Where("participations.event_id = ?", eventID).
		Order("students.id ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	return students, nil
}

// FindTimeline returns a student's full ledger, most recent first.
// Ties on created_at break by id so the order is stable.
func (d *LedgerDAO) FindTimeline(ctx context.Context, studentID uint) ([]PointTransaction, error) {
	var transactions []PointTransaction

	err := d.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

func (d *LedgerDAO) FindRecentTransactions(ctx context.Context, studentID uint, limit int) ([]PointTransaction, error) {
	var transactions []PointTransaction

	err := d.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// ParticipationLogRow is the joined shape backing the admin feed.
type ParticipationLogRow struct {
	NotificationID uint
	StudentName    string
	EventTitle     string
	CreatedAt      time.Time
	Seen           bool
}

func (d *LedgerDAO) FindParticipationLogs(ctx context.Context, limit int) ([]ParticipationLogRow, error) {
	var rows []ParticipationLogRow

	err := d.db.WithContext(ctx).Model(&PointTransaction{}).
		Select(`admin_notifications.id AS notification_id,
			students.name AS student_name,
			events.title AS event_title,
			point_transactions.created_at,
			admin_notifications.seen`).
		Joins("JOIN students ON students.id = point_transactions.student_id").
		Joins("JOIN events ON events.id = point_transactions.event_id").
		Joins("JOIN admin_notifications ON admin_notifications.point_transaction_id = point_transactions.id").
		Order("point_transactions.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *LedgerDAO) CountUnseenNotifications(ctx context.Context) (int64, error) {
	var count int64

	err := d.db.WithContext(ctx).Model(&AdminNotification{}).
		Where("seen = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// MarkAllNotificationsSeen flips every currently-unseen row. Entries created
// concurrently with the call stay unseen, which is the contract.
func (d *LedgerDAO) MarkAllNotificationsSeen(ctx context.Context) error {
	return d.db.WithContext(ctx).Model(&AdminNotification{}).
		Where("seen = ?", false).
		Update("seen", true).Error
}
