package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/service"
)

type stubLedgerService struct {
	awardErr       error
	participateErr error
	participations int
}

func (s *stubLedgerService) AwardPoints(_ context.Context, t domain.PointTransaction) (domain.PointTransaction, error) {
	if s.awardErr != nil {
		return domain.PointTransaction{}, s.awardErr
	}
	t.ID = 1

	return t, nil
}

func (s *stubLedgerService) AwardPointsBulk(_ context.Context, _ []uint, _ domain.PointTransaction) (service.BulkAwardResult, error) {
	return service.BulkAwardResult{}, nil
}

func (s *stubLedgerService) DeleteTransaction(_ context.Context, _ uint) error {
	return nil
}

func (s *stubLedgerService) Participate(_ context.Context, studentID, eventID uint) (domain.ParticipationResult, error) {
	if s.participateErr != nil {
		return domain.ParticipationResult{}, s.participateErr
	}
	s.participations++

	return domain.ParticipationResult{
		Participation: domain.Participation{ID: 1, StudentID: studentID, EventID: eventID},
	}, nil
}

func (s *stubLedgerService) ListParticipatedEventIDs(_ context.Context, _ uint) ([]uint, error) {
	return []uint{}, nil
}

func newEventRouter(ledgerSvc LedgerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewEventHandler(nil, ledgerSvc, nil)

	router := gin.New()
	router.POST("/events/award_points", handler.HandleAwardPoints)
	router.POST("/events/participate", handler.HandleParticipate)

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestHandleAwardPoints_ZeroPoints(t *testing.T) {
	router := newEventRouter(&stubLedgerService{awardErr: service.ErrZeroPoints})

	recorder := postJSON(t, router, "/events/award_points", gin.H{
		"student_id": 1,
		"points":     0,
		"category":   "academics",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "non-zero")
}

func TestHandleAwardPoints_BadCategory(t *testing.T) {
	router := newEventRouter(&stubLedgerService{})

	recorder := postJSON(t, router, "/events/award_points", gin.H{
		"student_id": 1,
		"points":     10,
		"category":   "arts",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleAwardPoints_StudentNotFound(t *testing.T) {
	router := newEventRouter(&stubLedgerService{awardErr: service.ErrStudentNotFound})

	recorder := postJSON(t, router, "/events/award_points", gin.H{
		"student_id": 99,
		"points":     10,
		"category":   "sports",
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandleParticipate_CreatedThenConflict(t *testing.T) {
	stub := &stubLedgerService{}
	router := newEventRouter(stub)

	body := gin.H{"student_id": 1, "event_id": 2}

	recorder := postJSON(t, router, "/events/participate", body)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, 1, stub.participations)

	stub.participateErr = service.ErrAlreadyRegistered
	recorder = postJSON(t, router, "/events/participate", body)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "already registered")
}

func TestHandleParticipate_MissingBody(t *testing.T) {
	router := newEventRouter(&stubLedgerService{})

	recorder := postJSON(t, router, "/events/participate", gin.H{"student_id": 1})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
