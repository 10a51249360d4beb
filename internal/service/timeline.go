package service

import (
	"time"

	"github.com/summitapp/summit/internal/apperr"
	"github.com/summitapp/summit/internal/model"
	"github.com/summitapp/summit/internal/repository"
)

type TimelineService struct {
	todoRepo repository.TodoRepository
}

func NewTimelineService(todoRepo repository.TodoRepository) *TimelineService {
	return &TimelineService{todoRepo: todoRepo}
}

type TimelinePage struct {
	Todos   []*model.TimelineTodo `json:"todos"`
	HasMore bool                  `json:"has_more"`
}

// DayGroup is one calendar day of completed todos, newest first.
type DayGroup struct {
	Date  string                `json:"date"`
	Todos []*model.TimelineTodo `json:"todos"`
}

// CompletedPage returns one page of completed todos, newest first, strictly
// older than before when given. HasMore uses the page-full heuristic: a full
// page is assumed to have more behind it, which is wrong exactly when the
// total count is a multiple of the page size.
func (s *TimelineService) CompletedPage(userID string, before *time.Time, pageSize int) (*TimelinePage, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if pageSize <= 0 {
		return nil, apperr.Validation("page_size", "must be positive")
	}

	todos, err := s.todoRepo.CompletedPage(userID, before, pageSize)
	if err != nil {
		return nil, storeErr("list completed todos", err)
	}

	return &TimelinePage{
		Todos:   todos,
		HasMore: len(todos) == pageSize,
	}, nil
}

// WeeklyCompleted returns every completed todo inside the Monday-to-Sunday
// week containing anchor, newest first, unpaginated.
func (s *TimelineService) WeeklyCompleted(userID string, anchor time.Time) (*TimelinePage, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	start, end := WeekBounds(anchor)
	todos, err := s.todoRepo.CompletedBetween(userID, start, end)
	if err != nil {
		return nil, storeErr("list completed todos", err)
	}

	return &TimelinePage{
		Todos:   todos,
		HasMore: false,
	}, nil
}

// WeekBounds returns the inclusive Monday-00:00 .. end-of-Sunday window of
// the calendar week containing anchor, in anchor's location.
func WeekBounds(anchor time.Time) (time.Time, time.Time) {
	// time.Weekday counts Sunday as 0; shift so Monday is day 0.
	offset := (int(anchor.Weekday()) + 6) % 7
	y, m, d := anchor.AddDate(0, 0, -offset).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// GroupByDate partitions completed todos into per-day groups keyed
// YYYY-MM-DD (local time of completion), preserving the input's descending
// order for both groups and the todos within them.
func GroupByDate(todos []*model.TimelineTodo) []*DayGroup {
	var groups []*DayGroup
	index := make(map[string]int)

	for _, todo := range todos {
		if todo.CompletedTime == nil {
			continue
		}
		date := todo.CompletedTime.Local().Format("2006-01-02")

		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, &DayGroup{Date: date})
		}
		groups[i].Todos = append(groups[i].Todos, todo)
	}

	return groups
}
