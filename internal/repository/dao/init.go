package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Department{},
		&Student{},
		&StudentTotal{},
		&Event{},
		&PointTransaction{},
		&Participation{},
		&AdminNotification{},
		&FinalSnapshot{},
	)
}
