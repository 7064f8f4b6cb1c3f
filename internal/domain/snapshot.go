package domain

import "time"

// FinalSnapshot is one frozen leaderboard row. Snapshot rows are immutable
// except for the revealed flag, which the reveal workflow flips on rank 1.
type FinalSnapshot struct {
	ID              uint      `json:"id"`
	StudentID       uint      `json:"student_id"`
	AcademicsPoints int       `json:"academics_points"`
	SportsPoints    int       `json:"sports_points"`
	CulturalPoints  int       `json:"cultural_points"`
	TechnicalPoints int       `json:"technical_points"`
	SocialPoints    int       `json:"social_points"`
	CompositePoints int       `json:"composite_points"`
	Rank            int       `json:"rank"`
	Revealed        bool      `json:"revealed"`
	CreatedAt       time.Time `json:"created_at"`
}
