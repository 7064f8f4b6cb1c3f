package response

import "github.com/sotyapp/backend/internal/domain"

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	StudentID   *uint  `json:"student_id,omitempty"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// DeleteEventResponse reports the cascade outcome.
type DeleteEventResponse struct {
	AffectedStudentIDs []uint `json:"affected_student_ids"`
}

type ParticipatedEventsResponse struct {
	EventIDs []uint `json:"event_ids"`
}

type RevealResponse struct {
	Winner domain.Student `json:"winner"`
}
