package handler

import (
	"net/http"
	"time"

	"github.com/summitapp/summit/internal/ctxkeys"
	"github.com/summitapp/summit/internal/service"
)

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

type createTodoRequest struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Priority      *string    `json:"priority"`
	DueDate       *time.Time `json:"due_date"`
	EstimatedTime *int       `json:"estimated_time"`
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req createTodoRequest
	err := decode(r, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	todo, err := h.todoService.Create(user.ID, goalID, service.CreateTodoInput{
		Name:          req.Name,
		Description:   req.Description,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
		EstimatedTime: req.EstimatedTime,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

type updateTodoRequest struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	Priority      *string    `json:"priority"`
	DueDate       *time.Time `json:"due_date"`
	EstimatedTime *int       `json:"estimated_time"`
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	todoID := r.PathValue("id")

	var req updateTodoRequest
	err := decode(r, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	todo, err := h.todoService.Update(user.ID, todoID, service.UpdateTodoInput{
		Name:          req.Name,
		Description:   req.Description,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
		EstimatedTime: req.EstimatedTime,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	todoID := r.PathValue("id")

	todo, err := h.todoService.ToggleCompletion(user.ID, todoID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	todoID := r.PathValue("id")

	err := h.todoService.Delete(user.ID, todoID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
