package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nthumods/mods-backend/internal/exporter"
	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/response"
	"github.com/nthumods/mods-backend/internal/service"
	"github.com/nthumods/mods-backend/internal/timetable"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CalendarSettings anchor exported calendars to the academic calendar.
type CalendarSettings struct {
	SemesterStart time.Time
	Weeks         int
	Location      *time.Location
}

type ExportHandler struct {
	timetableService *service.TimetableService
	calendar         CalendarSettings
	log              zerolog.Logger
}

func NewExportHandler(timetableService *service.TimetableService, calendar CalendarSettings, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		timetableService: timetableService,
		calendar:         calendar,
		log:              log.With().Str("component", "export_handler").Logger(),
	}
}

// Calendar godoc
// GET /timetable/calendar.ics?semester_1121=CS101,CS102
// Public so calendar apps can subscribe through the webcal:// link.
func (h *ExportHandler) Calendar(c *gin.Context) {
	semester, courses, ok := h.sharedCourses(c)
	if !ok {
		return
	}

	start := h.calendar.SemesterStart
	opts := exporter.CalendarOptions{
		Name:          "NTHUMods " + semester,
		SemesterStart: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, h.calendar.Location),
		Weeks:         h.calendar.Weeks,
		Location:      h.calendar.Location,
	}

	var buf bytes.Buffer
	if err := exporter.GenerateICS(courses, opts, &buf); err != nil {
		h.log.Error().Err(err).Str("semester", semester).Msg("Failed to render calendar")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="nthumods-%s.ics"`, semester))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// Workbook godoc
// GET /timetable/export.xlsx?semester_1121=CS101,CS102
func (h *ExportHandler) Workbook(c *gin.Context) {
	semester, courses, ok := h.sharedCourses(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := exporter.GenerateWorkbook(courses, &buf); err != nil {
		h.log.Error().Err(err).Str("semester", semester).Msg("Failed to render workbook")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Attachment(c, fmt.Sprintf("nthumods-%s.xlsx", semester), xlsxContentType, buf.Bytes())
}

// sharedCourses resolves the semester_<key> list of the request. Unknown ids
// are left out of the export.
func (h *ExportHandler) sharedCourses(c *gin.Context) (string, []model.Course, bool) {
	semester, ids, ok := timetable.ParseShared(c.Request.URL.RawQuery)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidShareLink)
		return "", nil, false
	}

	courses, missing, err := h.timetableService.CourseData(c.Request.Context(), ids)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load shared courses")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return "", nil, false
	}
	if len(missing) > 0 {
		h.log.Debug().Strs("missing", missing).Str("semester", semester).Msg("Export skips unknown courses")
	}
	return semester, courses, true
}
