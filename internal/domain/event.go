package domain

import "time"

type Event struct {
	ID                  uint      `json:"id"`
	Title               string    `json:"title"`
	Category            Category  `json:"category"`
	Date                time.Time `json:"date"`
	ParticipationPoints int       `json:"participation_points"`
	WinnerPoints        int       `json:"winner_points"`
	Description         string    `json:"description"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
