package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var validCategories = []interface{}{"academics", "sports", "cultural", "technical", "social"}

type CreateEventRequest struct {
	Title               string    `json:"title"`
	Category            string    `json:"category"`
	Date                time.Time `json:"date"`
	ParticipationPoints int       `json:"participation_points"`
	WinnerPoints        int       `json:"winner_points"`
	Description         string    `json:"description"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Category, validation.Required, validation.In(validCategories...)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.ParticipationPoints, validation.Min(0)),
		validation.Field(&req.WinnerPoints, validation.Min(0)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
	)
}

type UpdateEventRequest struct {
	Title               string    `json:"title"`
	Category            string    `json:"category"`
	Date                time.Time `json:"date"`
	ParticipationPoints int       `json:"participation_points"`
	WinnerPoints        int       `json:"winner_points"`
	Description         string    `json:"description"`
}

func (req *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Category, validation.Required, validation.In(validCategories...)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.ParticipationPoints, validation.Min(0)),
		validation.Field(&req.WinnerPoints, validation.Min(0)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
	)
}

// AwardPointsRequest allows negative points (deductions); the zero check
// lives in the service so it is enforced for every caller.
type AwardPointsRequest struct {
	StudentID uint   `json:"student_id"`
	EventID   *uint  `json:"event_id,omitempty"`
	Points    int    `json:"points"`
	Category  string `json:"category"`
	Reason    string `json:"reason"`
}

func (req *AwardPointsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentID, validation.Required),
		validation.Field(&req.Category, validation.Required, validation.In(validCategories...)),
		validation.Field(&req.Reason, validation.Length(0, 200)),
	)
}

type AwardPointsBulkRequest struct {
	StudentIDs []uint `json:"student_ids"`
	EventID    *uint  `json:"event_id,omitempty"`
	Points     int    `json:"points"`
	Category   string `json:"category"`
	Reason     string `json:"reason"`
}

func (req *AwardPointsBulkRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentIDs, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.Category, validation.Required, validation.In(validCategories...)),
		validation.Field(&req.Reason, validation.Length(0, 200)),
	)
}

type ParticipateRequest struct {
	StudentID uint `json:"student_id"`
	EventID   uint `json:"event_id"`
}

func (req *ParticipateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentID, validation.Required),
		validation.Field(&req.EventID, validation.Required),
	)
}
