package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sotyapp/backend/internal/api/handler/v1/response"
	"github.com/sotyapp/backend/internal/service"
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) ([]service.LeaderboardEntry, error)
	GetDepartmentLeaderboard(ctx context.Context, departmentID uint) ([]service.LeaderboardEntry, error)
	GetClassLeaderboard(ctx context.Context, year int) ([]service.LeaderboardEntry, error)
}

type LeaderboardHandler struct {
	svc LeaderboardService
}

func NewLeaderboardHandler(svc LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		svc: svc,
	}
}

// HandleGetLeaderboard godoc
// @Summary      Get the overall leaderboard
// @Tags         leaderboard
// @Produce      json
// @Success      200 {object} []service.LeaderboardEntry
// @Failure      500 {object} response.Err
// @Router       /leaderboard [get]
func (h *LeaderboardHandler) HandleGetLeaderboard(ctx *gin.Context) {
	entries, err := h.svc.GetLeaderboard(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLeaderboard -> h.svc.GetLeaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleGetDepartmentLeaderboard godoc
// @Summary      Get the leaderboard for one department
// @Tags         leaderboard
// @Produce      json
// @Param        departmentID path int true "department id"
// @Success      200 {object} []service.LeaderboardEntry
// @Failure      500 {object} response.Err
// @Router       /leaderboard/department/{departmentID} [get]
func (h *LeaderboardHandler) HandleGetDepartmentLeaderboard(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("departmentID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid department id")))
		return
	}

	entries, err := h.svc.GetDepartmentLeaderboard(ctx.Request.Context(), uint(id))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDepartmentLeaderboard -> h.svc.GetDepartmentLeaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleGetClassLeaderboard godoc
// @Summary      Get the leaderboard for one class year
// @Tags         leaderboard
// @Produce      json
// @Param        year path int true "class year"
// @Success      200 {object} []service.LeaderboardEntry
// @Failure      500 {object} response.Err
// @Router       /leaderboard/class/{year} [get]
func (h *LeaderboardHandler) HandleGetClassLeaderboard(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid class year")))
		return
	}

	entries, err := h.svc.GetClassLeaderboard(ctx.Request.Context(), year)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetClassLeaderboard -> h.svc.GetClassLeaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
