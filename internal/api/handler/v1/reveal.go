package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sotyapp/backend/internal/api/handler/v1/response"
	"github.com/sotyapp/backend/internal/domain"
	"github.com/sotyapp/backend/internal/service"
)

type RevealService interface {
	TakeSnapshot(ctx context.Context) ([]domain.FinalSnapshot, error)
	RevealWinner(ctx context.Context) (domain.Student, error)
	GetRevealedSnapshots(ctx context.Context) ([]domain.FinalSnapshot, error)
}

type RevealHandler struct {
	svc RevealService
}

func NewRevealHandler(svc RevealService) *RevealHandler {
	return &RevealHandler{
		svc: svc,
	}
}

// HandleTakeSnapshot godoc
// @Summary      Freeze the current ranking into a final snapshot
// @Tags         reveal
// @Produce      json
// @Success      201 {object} []domain.FinalSnapshot
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /snapshots [post]
func (h *RevealHandler) HandleTakeSnapshot(ctx *gin.Context) {
	snapshots, err := h.svc.TakeSnapshot(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(errors.New("no students to snapshot")))
			return
		}

		err = fmt.Errorf("v1.HandleTakeSnapshot -> h.svc.TakeSnapshot -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusCreated, snapshots)
}

// HandleGetRevealedSnapshots godoc
// @Summary      List revealed snapshot rows (empty before the reveal)
// @Tags         reveal
// @Produce      json
// @Success      200 {object} []domain.FinalSnapshot
// @Failure      500 {object} response.Err
// @Router       /snapshots [get]
func (h *RevealHandler) HandleGetRevealedSnapshots(ctx *gin.Context) {
	snapshots, err := h.svc.GetRevealedSnapshots(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRevealedSnapshots -> h.svc.GetRevealedSnapshots -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, snapshots)
}

// HandleReveal godoc
// @Summary      Reveal the student of the year
// @Tags         reveal
// @Produce      json
// @Success      200 {object} response.RevealResponse
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /reveal [post]
func (h *RevealHandler) HandleReveal(ctx *gin.Context) {
	winner, err := h.svc.RevealWinner(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSnapshotNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSnapshotNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleReveal -> h.svc.RevealWinner -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, response.RevealResponse{Winner: winner})
}
