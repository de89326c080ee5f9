package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nthumods/mods-backend/internal/middleware"
	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/response"
	"github.com/nthumods/mods-backend/internal/service"
	"github.com/nthumods/mods-backend/internal/timetable"
	"github.com/nthumods/mods-backend/internal/validator"
	"github.com/rs/zerolog"
)

type TimetableHandler struct {
	timetableService *service.TimetableService
	log              zerolog.Logger
}

func NewTimetableHandler(timetableService *service.TimetableService, log zerolog.Logger) *TimetableHandler {
	return &TimetableHandler{
		timetableService: timetableService,
		log:              log.With().Str("component", "timetable_handler").Logger(),
	}
}

// View godoc
// GET /api/v1/timetable/:semester
func (h *TimetableHandler) View(c *gin.Context) {
	semester, ok := bindSemester(c)
	if !ok {
		return
	}

	view, err := h.timetableService.View(c.Request.Context(), middleware.GetClientID(c), semester)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// ListCourses godoc
// GET /api/v1/timetable/:semester/courses
func (h *TimetableHandler) ListCourses(c *gin.Context) {
	semester, ok := bindSemester(c)
	if !ok {
		return
	}

	ids, err := h.timetableService.GetSemesterCourses(c.Request.Context(), middleware.GetClientID(c), semester)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"semester": semester, "course_ids": ids})
}

// AddCourse godoc
// POST /api/v1/timetable/:semester/courses
func (h *TimetableHandler) AddCourse(c *gin.Context) {
	semester, ok := bindSemester(c)
	if !ok {
		return
	}

	var req model.AddCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	clientID := middleware.GetClientID(c)
	if err := h.timetableService.AddCourse(c.Request.Context(), clientID, semester, req.RawID); err != nil {
		h.fail(c, err)
		return
	}

	ids, err := h.timetableService.GetSemesterCourses(c.Request.Context(), clientID, semester)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"semester": semester, "course_ids": ids})
}

// DeleteCourse godoc
// DELETE /api/v1/timetable/:semester/courses/:raw_id
func (h *TimetableHandler) DeleteCourse(c *gin.Context) {
	semester, ok := bindSemester(c)
	if !ok {
		return
	}

	clientID := middleware.GetClientID(c)
	if err := h.timetableService.DeleteCourse(c.Request.Context(), clientID, semester, c.Param("raw_id")); err != nil {
		h.fail(c, err)
		return
	}

	ids, err := h.timetableService.GetSemesterCourses(c.Request.Context(), clientID, semester)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"semester": semester, "course_ids": ids})
}

// Clear godoc
// DELETE /api/v1/timetable/:semester
func (h *TimetableHandler) Clear(c *gin.Context) {
	semester, ok := bindSemester(c)
	if !ok {
		return
	}

	if err := h.timetableService.Clear(c.Request.Context(), middleware.GetClientID(c), semester); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"semester": semester, "course_ids": []string{}})
}

// Import godoc
// POST /api/v1/timetable/:semester/import
func (h *TimetableHandler) Import(c *gin.Context) {
	semester, ok := bindSemester(c)
	if !ok {
		return
	}

	var req model.ImportTimetableRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ids, err := h.timetableService.Import(c.Request.Context(), middleware.GetClientID(c), semester, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"semester": semester, "course_ids": ids})
}

// Shared godoc
// GET /api/v1/shared?semester_1121=CS101,CS102&theme=pastelColors
// Renders a shared course list without touching any stored timetable.
func (h *TimetableHandler) Shared(c *gin.Context) {
	semester, ids, ok := timetable.ParseShared(c.Request.URL.RawQuery)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidShareLink)
		return
	}

	view, err := h.timetableService.SharedView(c.Request.Context(), semester, ids, c.Query("theme"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// GetPreferences godoc
// GET /api/v1/preferences
func (h *TimetableHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.timetableService.Preferences(c.Request.Context(), middleware.GetClientID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"preferences": prefs, "themes": timetable.Themes()})
}

// UpdatePreferences godoc
// PUT /api/v1/preferences
func (h *TimetableHandler) UpdatePreferences(c *gin.Context) {
	var req model.UpdatePreferencesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	prefs, err := h.timetableService.UpdatePreferences(c.Request.Context(), middleware.GetClientID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"preferences": prefs})
}

func (h *TimetableHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
	case errors.Is(err, service.ErrCourseNotInTimetable):
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotInTimetable)
	case errors.Is(err, service.ErrUnknownTheme):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownTheme)
	case errors.Is(err, service.ErrInvalidShareLink):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidShareLink)
	case errors.Is(err, service.ErrSemesterMismatch):
		response.Fail(c, http.StatusBadRequest, response.ErrSemesterMismatch)
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("Timetable request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

func bindSemester(c *gin.Context) (string, bool) {
	var uri model.SemesterURI
	if fields := validator.BindURI(c, &uri); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return "", false
	}
	return uri.Semester, true
}
