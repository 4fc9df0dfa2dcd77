package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/smartschedule/smartschedule/internal/application"
	"github.com/smartschedule/smartschedule/internal/extractor"
	"github.com/smartschedule/smartschedule/internal/interface/middleware"
	"github.com/smartschedule/smartschedule/internal/view"
	"github.com/smartschedule/smartschedule/pkg/response"
	"github.com/smartschedule/smartschedule/pkg/validation"
)

type ScheduleHandler struct {
	Svc      *application.ScheduleService
	Logger   *logrus.Logger
	Location *time.Location
}

func NewScheduleHandler(svc *application.ScheduleService, logger *logrus.Logger, loc *time.Location) *ScheduleHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleHandler{Svc: svc, Logger: logger, Location: loc}
}

type submitRequest struct {
	Text     string `json:"text" binding:"required"`
	Timezone string `json:"timezone" binding:"omitempty,timezone"`
}

type dayPromptRequest struct {
	Input string `json:"input"`
	Year  int    `json:"year" binding:"required"`
	Month int    `json:"month" binding:"required,gte=1,lte=12"`
	Day   int    `json:"day" binding:"required,gte=1,lte=31"`
}

// Submit POST /api/schedule runs one extraction and stores the events.
func (h *ScheduleHandler) Submit(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	added, err := h.Svc.Submit(c.Request.Context(), uid, req.Text, req.Timezone)
	switch {
	case err == nil:
		response.Success(c, http.StatusCreated, gin.H{"added": view.Cards(added, h.Location)}, "events scheduled", gin.H{"count": len(added)})
	case errors.Is(err, application.ErrEmptyPrompt):
		response.Error[any](c, http.StatusBadRequest, "prompt is empty", nil)
	case errors.Is(err, application.ErrSubmissionInFlight):
		response.Error[any](c, http.StatusConflict, "a submission is already in flight", nil)
	case errors.Is(err, application.ErrNoEventsRecognized):
		// Soft condition: guide the user instead of erroring hard.
		response.Error[any](c, http.StatusUnprocessableEntity, "no events recognized, try being more specific about time and date", nil)
	case errors.Is(err, extractor.ErrExtractionFailed):
		response.Error[any](c, http.StatusBadGateway, "something went wrong while talking to the assistant, please try again", nil)
	default:
		response.Error[any](c, http.StatusBadGateway, "something went wrong while talking to the assistant, please try again", nil)
	}
}

// List GET /api/events?view=grid|list returns the sorted event cards.
func (h *ScheduleHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	mode := c.DefaultQuery("view", "grid")
	if mode != "grid" && mode != "list" {
		response.Error[any](c, http.StatusBadRequest, "view must be grid or list", nil)
		return
	}
	events, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to load events", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"view": mode, "events": view.Cards(events, h.Location)}, "events", gin.H{"count": len(events)})
}

// Delete DELETE /api/events/:id removes one event; unknown ids still
// answer 200 (the store treats them as a no-op).
func (h *ScheduleHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id := c.Param("id")
	if err := h.Svc.Remove(c.Request.Context(), uid, id); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to delete event", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": id}, "event deleted", nil)
}

// Calendar GET /api/calendar/:year/:month renders the month grid.
func (h *ScheduleHandler) Calendar(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		response.Error[any](c, http.StatusBadRequest, "invalid year", nil)
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		response.Error[any](c, http.StatusBadRequest, "invalid month", nil)
		return
	}
	events, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to load events", nil)
		return
	}
	grid := view.BuildMonthGrid(year, time.Month(month), events, h.Location, time.Now())
	response.Success(c, http.StatusOK, grid, "calendar", nil)
}

// DayPrompt POST /api/calendar/prompt composes the input text for a
// clicked calendar day.
func (h *ScheduleHandler) DayPrompt(c *gin.Context) {
	var req dayPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	date := time.Date(req.Year, time.Month(req.Month), req.Day, 0, 0, 0, 0, h.Location)
	composed := view.ComposeDayPrompt(req.Input, date)
	response.Success(c, http.StatusOK, gin.H{"input": composed}, "prompt composed", nil)
}

// ExportICS GET /api/calendar/export.ics downloads the user's schedule
// as an iCalendar document.
func (h *ScheduleHandler) ExportICS(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	events, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to load events", nil)
		return
	}
	body := view.ExportICS(events, h.Location)
	c.Header("Content-Disposition", `attachment; filename="smartschedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
