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

type StudentService interface {
	CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	GetStudent(ctx context.Context, identifier string) (domain.Student, error)
	ListStudents(ctx context.Context) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	DeleteStudent(ctx context.Context, id uint) error
	GetTimeline(ctx context.Context, identifier string) ([]domain.PointTransaction, error)
	GetBreakdown(ctx context.Context, identifier string) (domain.StudentTotal, error)
	GetAchievements(ctx context.Context, identifier string) ([]domain.Badge, error)
}

type StudentHandler struct {
	svc StudentService
}

func NewStudentHandler(svc StudentService) *StudentHandler {
	return &StudentHandler{
		svc: svc,
	}
}

// HandleListStudents godoc
// @Summary      List all students
// @Tags         students
// @Produce      json
// @Success      200 {object} []domain.Student
// @Failure      500 {object} response.Err
// @Router       /students [get]
func (h *StudentHandler) HandleListStudents(ctx *gin.Context) {
	students, err := h.svc.ListStudents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListStudents -> h.svc.ListStudents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleGetStudent godoc
// @Summary      Get one student by id or roll number
// @Tags         students
// @Produce      json
// @Param        studentID   path      string true "student id or roll number"
// @Success      200 {object} domain.Student
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /students/{studentID} [get]
func (h *StudentHandler) HandleGetStudent(ctx *gin.Context) {
	student, err := h.svc.GetStudent(ctx.Request.Context(), ctx.Param("studentID"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetStudent -> h.svc.GetStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// HandleCreateStudent godoc
// @Summary      Create a student
// @Tags         students
// @Produce      json
// @Param        request body request.CreateStudentRequest true "request body"
// @Success      201 {object} domain.Student
// @Failure      400 {object} response.Err
// @Failure      409 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /students [post]
func (h *StudentHandler) HandleCreateStudent(ctx *gin.Context) {
	var req request.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	student, err := h.svc.CreateStudent(ctx.Request.Context(), domain.Student{
		RollNumber: req.RollNumber,
		Name:       req.Name,
		Year:       req.Year,
		Department: &domain.Department{ID: req.DepartmentID},
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRollNumberExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrRollNumberExists))
		case errors.Is(err, service.ErrDepartmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDepartmentNotFound))
		default:
			err = fmt.Errorf("v1.HandleCreateStudent -> h.svc.CreateStudent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// HandleUpdateStudent godoc
// @Summary      Update a student
// @Tags         students
// @Produce      json
// @Param        studentID path int true "student id"
// @Param        request body request.UpdateStudentRequest true "request body"
// @Success      200 {object} domain.Student
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /students/{studentID} [put]
func (h *StudentHandler) HandleUpdateStudent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("studentID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid student id")))
		return
	}

	var req request.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	student, err := h.svc.UpdateStudent(ctx.Request.Context(), domain.Student{
		ID:         uint(id),
		RollNumber: req.RollNumber,
		Name:       req.Name,
		Year:       req.Year,
		Department: &domain.Department{ID: req.DepartmentID},
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
		case errors.Is(err, service.ErrRollNumberExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrRollNumberExists))
		case errors.Is(err, service.ErrDepartmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDepartmentNotFound))
		default:
			err = fmt.Errorf("v1.HandleUpdateStudent -> h.svc.UpdateStudent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		}
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// HandleDeleteStudent godoc
// @Summary      Delete a student and their ledger
// @Tags         students
// @Param        studentID path int true "student id"
// @Success      204
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /students/{studentID} [delete]
func (h *StudentHandler) HandleDeleteStudent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("studentID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid student id")))
		return
	}

	if err := h.svc.DeleteStudent(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteStudent -> h.svc.DeleteStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetTimeline godoc
// @Summary      Get a student's full points timeline, most recent first
// @Tags         students
// @Produce      json
// @Param        studentID path string true "student id or roll number"
// @Success      200 {object} []domain.PointTransaction
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /students/{studentID}/timeline [get]
func (h *StudentHandler) HandleGetTimeline(ctx *gin.Context) {
	transactions, err := h.svc.GetTimeline(ctx.Request.Context(), ctx.Param("studentID"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetTimeline -> h.svc.GetTimeline -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, transactions)
}

// HandleGetBreakdown godoc
// @Summary      Get a student's per-category totals
// @Tags         students
// @Produce      json
// @Param        studentID path string true "student id or roll number"
// @Success      200 {object} domain.StudentTotal
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /students/{studentID}/breakdown [get]
func (h *StudentHandler) HandleGetBreakdown(ctx *gin.Context) {
	breakdown, err := h.svc.GetBreakdown(ctx.Request.Context(), ctx.Param("studentID"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetBreakdown -> h.svc.GetBreakdown -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, breakdown)
}

// HandleGetAchievements godoc
// @Summary      Get a student's earned badges
// @Tags         students
// @Produce      json
// @Param        studentID path string true "student id or roll number"
// @Success      200 {object} []domain.Badge
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /students/{studentID}/achievements [get]
func (h *StudentHandler) HandleGetAchievements(ctx *gin.Context) {
	badges, err := h.svc.GetAchievements(ctx.Request.Context(), ctx.Param("studentID"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrStudentNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetAchievements -> h.svc.GetAchievements -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(ctx, err))
		return
	}

	ctx.JSON(http.StatusOK, badges)
}
