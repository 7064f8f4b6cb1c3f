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

type DepartmentService interface {
	CreateDepartment(ctx context.Context, department domain.Department) (domain.Department, error)
	GetDepartment(ctx context.Context, id uint) (domain.Department, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	UpdateDepartment(ctx context.Context, department domain.Department) (domain.Department, error)
	DeleteDepartment(ctx context.Context, id uint) error
}

type DepartmentHandler struct {
	svc DepartmentService
}

func NewDepartmentHandler(svc DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		svc: svc,
	}
}

// HandleListDepartments godoc
// @Summary      List all departments
// @Tags         departments
// @Produce      json
// @Success      200 {object} []domain.Department
// @Failure      500 {object} response.Err
// @Router       /departments [get]
func (h *DepartmentHandler) HandleListDepartments(ctx *gin.Context) {
	departments, err := h.svc.ListDepartments(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListDepartments -> h.svc.ListDepartments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, departments)
}

// HandleGetDepartment godoc
// @Summary      Get one department
// @Tags         departments
// @Produce      json
// @Param        departmentID path int true "department id"
// @Success      200 {object} domain.Department
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /departments/{departmentID} [get]
func (h *DepartmentHandler) HandleGetDepartment(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("departmentID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid department id")))
		return
	}

	department, err := h.svc.GetDepartment(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDepartmentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetDepartment -> h.svc.GetDepartment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, department)
}

// HandleCreateDepartment godoc
// @Summary      Create a department
// @Tags         departments
// @Produce      json
// @Param        request body request.DepartmentRequest true "request body"
// @Success      201 {object} domain.Department
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /departments [post]
func (h *DepartmentHandler) HandleCreateDepartment(ctx *gin.Context) {
	var req request.DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	department, err := h.svc.CreateDepartment(ctx.Request.Context(), domain.Department{Name: req.Name})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateDepartment -> h.svc.CreateDepartment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusCreated, department)
}

// HandleUpdateDepartment godoc
// @Summary      Rename a department
// @Tags         departments
// @Produce      json
// @Param        departmentID path int true "department id"
// @Param        request body request.DepartmentRequest true "request body"
// @Success      200 {object} domain.Department
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /departments/{departmentID} [put]
func (h *DepartmentHandler) HandleUpdateDepartment(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("departmentID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid department id")))
		return
	}

	var req request.DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	department, err := h.svc.UpdateDepartment(ctx.Request.Context(), domain.Department{
		ID:   uint(id),
		Name: req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDepartmentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateDepartment -> h.svc.UpdateDepartment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, department)
}

// HandleDeleteDepartment godoc
// @Summary      Delete a department
// @Tags         departments
// @Param        departmentID path int true "department id"
// @Success      204
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /departments/{departmentID} [delete]
func (h *DepartmentHandler) HandleDeleteDepartment(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("departmentID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid department id")))
		return
	}

	if err := h.svc.DeleteDepartment(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDepartmentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteDepartment -> h.svc.DeleteDepartment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
