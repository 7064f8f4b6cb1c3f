package domain

import "time"

// Participation marks that a student registered for an event.
// At most one record exists per (student, event) pair.
type Participation struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	EventID   uint      `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ParticipationResult reports the outcome of a participate call. The second
// call for the same pair yields AlreadyRegistered=true and no new writes.
type ParticipationResult struct {
	Participation     Participation     `json:"participation"`
	Transaction       *PointTransaction `json:"transaction,omitempty"`
	AlreadyRegistered bool              `json:"already_registered"`
}

// ParticipationLog is one entry of the admin notification feed.
type ParticipationLog struct {
	NotificationID uint      `json:"notification_id"`
	StudentName    string    `json:"student_name"`
	EventTitle     string    `json:"event_title"`
	Timestamp      time.Time `json:"timestamp"`
	Seen           bool      `json:"seen"`
}
