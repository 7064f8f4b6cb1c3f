package domain

import "time"

type Department struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Student struct {
	ID         uint        `json:"id"`
	RollNumber string      `json:"roll_number"`
	Name       string      `json:"name"`
	Year       int         `json:"year"`
	Department *Department `json:"department,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`

	// Read-model extras, populated on aggregate reads.
	Total        *StudentTotal      `json:"total,omitempty"`
	Badges       []Badge            `json:"badges,omitempty"`
	Transactions []PointTransaction `json:"transactions,omitempty"`
}

// StudentTotal carries the per-category running totals for one student.
// It is denormalized for leaderboard queries; the transaction log remains
// the source of truth and totals are recomputed from it on every write.
type StudentTotal struct {
	StudentID       uint      `json:"student_id"`
	AcademicsPoints int       `json:"academics_points"`
	SportsPoints    int       `json:"sports_points"`
	CulturalPoints  int       `json:"cultural_points"`
	TechnicalPoints int       `json:"technical_points"`
	SocialPoints    int       `json:"social_points"`
	CompositePoints int       `json:"composite_points"`
	Wins            int       `json:"wins"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CategoryPoints returns the stored total for a single category.
func (t StudentTotal) CategoryPoints(c Category) int {
	switch c {
	case CategoryAcademics:
		return t.AcademicsPoints
	case CategorySports:
		return t.SportsPoints
	case CategoryCultural:
		return t.CulturalPoints
	case CategoryTechnical:
		return t.TechnicalPoints
	case CategorySocial:
		return t.SocialPoints
	}

	return 0
}

// Badge is derived from totals at read time; there is no stored badge table.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Threshold   int    `json:"threshold"`
}
