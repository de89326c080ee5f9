package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/response"
	"github.com/nthumods/mods-backend/internal/service"
	"github.com/nthumods/mods-backend/internal/validator"
)

type CourseHandler struct {
	courseService *service.CourseService
}

func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Search godoc
// GET /api/v1/courses/search?q=...&department=CS&level=1&timeslot=M1
func (h *CourseHandler) Search(c *gin.Context) {
	var filters model.RefineFilters
	if fields := validator.BindQuery(c, &filters); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.courseService.Search(filters)
	if err != nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrSearchUnavailable)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"courses": res.Hits}, &response.Pagination{
		Page:       res.Page,
		PerPage:    res.HitsPerPage,
		TotalItems: res.TotalHits,
		TotalPages: res.TotalPages,
	})
}

// Get godoc
// GET /api/v1/courses/:raw_id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courseService.Get(c.Request.Context(), c.Param("raw_id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course, "meetings": course.Meetings()})
}

// Departments godoc
// GET /api/v1/departments
func (h *CourseHandler) Departments(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"departments": model.Departments})
}
