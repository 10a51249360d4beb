package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/summitapp/summit/internal/apperr"
	"github.com/summitapp/summit/internal/ctxkeys"
	"github.com/summitapp/summit/internal/service"
)

type TimelineHandler struct {
	timelineService *service.TimelineService
	pageSize        int
}

func NewTimelineHandler(timelineService *service.TimelineService, pageSize int) *TimelineHandler {
	return &TimelineHandler{
		timelineService: timelineService,
		pageSize:        pageSize,
	}
}

type timelineResponse struct {
	Groups     []*service.DayGroup `json:"groups"`
	HasMore    bool                `json:"has_more"`
	NextCursor string              `json:"next_cursor,omitempty"`
}

// Timeline serves the load-more view: completed todos grouped by day,
// cursor-paginated on completed_time.
func (h *TimelineHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var cursor *time.Time
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			writeError(w, apperr.Validation("cursor", "must be an RFC 3339 timestamp"))
			return
		}
		cursor = &parsed
	}

	pageSize := h.pageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, apperr.Validation("page_size", "must be an integer"))
			return
		}
		pageSize = parsed
	}

	page, err := h.timelineService.CompletedPage(user.ID, cursor, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := timelineResponse{
		Groups:  service.GroupByDate(page.Todos),
		HasMore: page.HasMore,
	}
	if page.HasMore && len(page.Todos) > 0 {
		last := page.Todos[len(page.Todos)-1]
		resp.NextCursor = last.CompletedTime.Format(time.RFC3339Nano)
	}

	writeJSON(w, http.StatusOK, resp)
}

type weeklyTimelineResponse struct {
	Groups    []*service.DayGroup `json:"groups"`
	WeekStart time.Time           `json:"week_start"`
	WeekEnd   time.Time           `json:"week_end"`
	HasMore   bool                `json:"has_more"`
}

// Weekly serves the Monday-to-Sunday window containing ?anchor=YYYY-MM-DD
// (today when absent).
func (h *TimelineHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	anchor := time.Now()
	if raw := r.URL.Query().Get("anchor"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			writeError(w, apperr.Validation("anchor", "must be a YYYY-MM-DD date"))
			return
		}
		anchor = parsed
	}

	page, err := h.timelineService.WeeklyCompleted(user.ID, anchor)
	if err != nil {
		writeError(w, err)
		return
	}

	start, end := service.WeekBounds(anchor)
	writeJSON(w, http.StatusOK, weeklyTimelineResponse{
		Groups:    service.GroupByDate(page.Todos),
		WeekStart: start,
		WeekEnd:   end,
		HasMore:   false,
	})
}
