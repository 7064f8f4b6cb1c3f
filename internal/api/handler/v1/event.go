package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sotyapp/backend/internal/api/handler/v1/request"
	"github.com/sotyapp/backend/internal/api/handler/v1/response"
	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, id uint) ([]uint, error)
	GetParticipants(ctx context.Context, eventID uint) ([]domain.Student, error)
}

type LedgerService interface {
	AwardPoints(ctx context.Context, transaction domain.PointTransaction) (domain.PointTransaction, error)
	AwardPointsBulk(ctx context.Context, studentIDs []uint, transaction domain.PointTransaction) (service.BulkAwardResult, error)
	DeleteTransaction(ctx context.Context, id uint) error
	Participate(ctx context.Context, studentID, eventID uint) (domain.ParticipationResult, error)
	ListParticipatedEventIDs(ctx context.Context, studentID uint) ([]uint, error)
}

type NotificationService interface {
	GetParticipationLogs(ctx context.Context, limit int) ([]domain.ParticipationLog, error)
	GetUnreadCount(ctx context.Context) (int64, error)
	MarkAllSeen(ctx context.Context) error
}

type EventHandler struct {
	svc             EventService
	ledgerSvc       LedgerService
	notificationSvc NotificationService
}

func NewEventHandler(svc EventService, ledgerSvc LedgerService, notificationSvc NotificationService) *EventHandler {
	return &EventHandler{
		svc:             svc,
		ledgerSvc:       ledgerSvc,
		notificationSvc: notificationSvc,
	}
}

// HandleListEvents godoc
// @Summary      List all events, newest first
// @Tags         events
// @Produce      json
// @Success      200 {object} []domain.Event
// @Failure      500 {object} response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get one event
// @Tags         events
// @Produce      json
// @Param        eventID path int true "event id"
// @Success      200 {object} domain.Event
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid event id")))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Produce      json
// @Param        request body request.CreateEventRequest true "request body"
// @Success      201 {object} domain.Event
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Title:               req.Title,
		Category:            domain.Category(req.Category),
		Date:                req.Date,
		ParticipationPoints: req.ParticipationPoints,
		WinnerPoints:        req.WinnerPoints,
		Description:         req.Description,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Produce      json
// @Param        eventID path int true "event id"
// @Param        request body request.UpdateEventRequest true "request body"
// @Success      200 {object} domain.Event
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/{eventID} [put]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid event id")))
		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), domain.Event{
		ID:                  uint(id),
		Title:               req.Title,
		Category:            domain.Category(req.Category),
		Date:                req.Date,
		ParticipationPoints: req.ParticipationPoints,
		WinnerPoints:        req.WinnerPoints,
		Description:         req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event and cascade its ledger entries
// @Tags         events
// @Produce      json
// @Param        eventID path int true "event id"
// @Success      200 {object} response.DeleteEventResponse
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/{eventID} [delete]
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid event id")))
		return
	}

	affected, err := h.svc.DeleteEvent(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	if affected == nil {
		affected = []uint{}
	}

	ctx.JSON(http.StatusOK, response.DeleteEventResponse{AffectedStudentIDs: affected})
}

// HandleGetParticipants godoc
// @Summary      List students registered for an event
// @Tags         events
// @Produce      json
// @Param        eventID path int true "event id"
// @Success      200 {object} []domain.Student
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/{eventID}/participants [get]
func (h *EventHandler) HandleGetParticipants(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("eventID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid event id")))
		return
	}

	students, err := h.svc.GetParticipants(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetParticipants -> h.svc.GetParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleAwardPoints godoc
// @Summary      Award (or deduct) points for a student
// @Tags         events
// @Produce      json
// @Param        request body request.AwardPointsRequest true "request body"
// @Success      201 {object} domain.PointTransaction
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/award_points [post]
func (h *EventHandler) HandleAwardPoints(ctx *gin.Context) {
	var req request.AwardPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	transaction, err := h.ledgerSvc.AwardPoints(ctx.Request.Context(), domain.PointTransaction{
		StudentID: req.StudentID,
		EventID:   req.EventID,
		Points:    req.Points,
		Category:  domain.Category(req.Category),
		Reason:    req.Reason,
		AwardedBy: awardedBy(ctx),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrZeroPoints):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrZeroPoints))
		case errors.Is(err, service.ErrInvalidCategory):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCategory))
		case errors.Is(err, service.ErrStudentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		default:
			err = fmt.Errorf("v1.HandleAwardPoints -> h.ledgerSvc.AwardPoints -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, transaction)
}

// HandleAwardPointsBulk godoc
// @Summary      Award the same points entry to several students
// @Tags         events
// @Produce      json
// @Param        request body request.AwardPointsBulkRequest true "request body"
// @Success      201 {object} service.BulkAwardResult
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/award_points_bulk [post]
func (h *EventHandler) HandleAwardPointsBulk(ctx *gin.Context) {
	var req request.AwardPointsBulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.ledgerSvc.AwardPointsBulk(ctx.Request.Context(), req.StudentIDs, domain.PointTransaction{
		EventID:   req.EventID,
		Points:    req.Points,
		Category:  domain.Category(req.Category),
		Reason:    req.Reason,
		AwardedBy: awardedBy(ctx),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrZeroPoints):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrZeroPoints))
		case errors.Is(err, service.ErrInvalidCategory):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCategory))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		default:
			err = fmt.Errorf("v1.HandleAwardPointsBulk -> h.ledgerSvc.AwardPointsBulk -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// HandleDeleteTransaction godoc
// @Summary      Delete one points transaction
// @Tags         events
// @Param        transactionID path int true "transaction id"
// @Success      204
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/transactions/{transactionID} [delete]
func (h *EventHandler) HandleDeleteTransaction(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("transactionID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid transaction id")))
		return
	}

	if err := h.ledgerSvc.DeleteTransaction(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrTransactionNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteTransaction -> h.ledgerSvc.DeleteTransaction -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleParticipate godoc
// @Summary      Register a student for an event
// @Tags         events
// @Produce      json
// @Param        request body request.ParticipateRequest true "request body"
// @Success      201 {object} domain.ParticipationResult
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      409 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/participate [post]
func (h *EventHandler) HandleParticipate(ctx *gin.Context) {
	var req request.ParticipateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.ledgerSvc.Participate(ctx.Request.Context(), req.StudentID, req.EventID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered))
		case errors.Is(err, service.ErrStudentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		default:
			err = fmt.Errorf("v1.HandleParticipate -> h.ledgerSvc.Participate -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// HandleGetParticipatedEvents godoc
// @Summary      List event ids a student has registered for
// @Tags         events
// @Produce      json
// @Param        studentID path int true "student id"
// @Success      200 {object} response.ParticipatedEventsResponse
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /events/participated/{studentID} [get]
func (h *EventHandler) HandleGetParticipatedEvents(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("studentID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid student id")))
		return
	}

	ids, err := h.ledgerSvc.ListParticipatedEventIDs(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetParticipatedEvents -> h.ledgerSvc.ListParticipatedEventIDs -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, response.ParticipatedEventsResponse{EventIDs: ids})
}

// HandleGetParticipationLogs godoc
// @Summary      Admin feed of recent participations, newest first
// @Tags         notifications
// @Produce      json
// @Param        limit query int false "max entries"
// @Success      200 {object} []domain.ParticipationLog
// @Failure      500 {object} response.Err
// @Router       /events/participation_logs [get]
func (h *EventHandler) HandleGetParticipationLogs(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	logs, err := h.notificationSvc.GetParticipationLogs(ctx.Request.Context(), limit)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetParticipationLogs -> h.notificationSvc.GetParticipationLogs -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, logs)
}

// HandleGetUnreadCount godoc
// @Summary      Count unseen participation notifications
// @Tags         notifications
// @Produce      json
// @Success      200 {object} response.UnreadCountResponse
// @Failure      500 {object} response.Err
// @Router       /events/notifications/unread_count [get]
func (h *EventHandler) HandleGetUnreadCount(ctx *gin.Context) {
	count, err := h.notificationSvc.GetUnreadCount(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetUnreadCount -> h.notificationSvc.GetUnreadCount -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, response.UnreadCountResponse{UnreadCount: count})
}

// HandleMarkNotificationsSeen godoc
// @Summary      Mark all unseen notifications as seen
// @Tags         notifications
// @Success      204
// @Failure      500 {object} response.Err
// @Router       /events/notifications/mark_seen [patch]
func (h *EventHandler) HandleMarkNotificationsSeen(ctx *gin.Context) {
	if err := h.notificationSvc.MarkAllSeen(ctx.Request.Context()); err != nil {
		err = fmt.Errorf("v1.HandleMarkNotificationsSeen -> h.notificationSvc.MarkAllSeen -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// awardedBy reads the acting admin's user id set by the JWT middleware.
func awardedBy(ctx *gin.Context) *uint {
	if v, ok := ctx.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}

	return nil
}
