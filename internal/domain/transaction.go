package domain

import "time"

// ReasonParticipation marks ledger entries created by the participation
// flow; ReasonWinner marks winner bonus awards and feeds the wins tally.
const (
	ReasonParticipation = "Student opted to participate"
	ReasonWinner        = "winner"
)

// PointTransaction is one immutable entry in a student's points ledger.
// Entries are only ever appended; event deletion is the single cascade
// that removes them.
type PointTransaction struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	EventID   *uint     `json:"event_id,omitempty"`
	Points    int       `json:"points"`
	Category  Category  `json:"category"`
	Reason    string    `json:"reason"`
	AwardedBy *uint     `json:"awarded_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
