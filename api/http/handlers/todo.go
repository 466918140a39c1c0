package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/todolist/api/api/http/presenter"
	"github.com/todolist/api/pkg/todo"
)

type TodoHandler struct {
	uc todo.UseCase
}

func NewTodoHandler(uc todo.UseCase) *TodoHandler { return &TodoHandler{uc: uc} }

// ownerID resolves the caller identity placed into locals by the auth middleware.
func ownerID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

type createTodoRequest struct {
	Title     string  `json:"title"`
	Completed *bool   `json:"completed"`
	Date      *string `json:"date"`
	Priority  *string `json:"priority"`
}

type updateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	Date      *string `json:"date"`
	Priority  *string `json:"priority"`
}

// Create handles new todo creation. The owner always comes from the token;
// any client-supplied owner field is ignored by the DTO shape.
// @Summary Create a new todo
// @Tags    todos
// @Accept  json
// @Produce json
// @Param   input body createTodoRequest true "todo payload"
// @Security BearerAuth
// @Success 200 {object} presenter.SuccessResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /todos [post]
func (h *TodoHandler) Create(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Unauthorized")
	}
	var req createTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if strings.TrimSpace(req.Title) == "" {
		return presenter.Error(c, http.StatusBadRequest, "Title is required")
	}

	in := todo.CreateInput{Title: req.Title, Completed: req.Completed}
	if req.Date != nil {
		t, ok := parseDate(*req.Date)
		if !ok {
			return presenter.Error(c, http.StatusBadRequest, "Date must be a valid timestamp")
		}
		in.Date = &t
	}
	if req.Priority != nil && *req.Priority != "" {
		p, ok := todo.ParsePriority(*req.Priority)
		if !ok {
			return presenter.Error(c, http.StatusBadRequest, "Priority must be one of LOW, MEDIUM, HIGH")
		}
		in.Priority = &p
	}

	created, err := h.uc.Create(c.Context(), uid, in)
	if err != nil {
		if ve, ok := err.(todo.ErrValidation); ok {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		log.Printf("create todo: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}
	return presenter.Success(c, http.StatusOK, "Created", created)
}

// List returns the caller's todos with filtering, sorting and pagination.
// @Summary Retrieve todos with optional filtering, pagination, and sorting
// @Tags    todos
// @Produce json
// @Param   completed query bool false "filter by completion state"
// @Param   priority query string false "LOW, MEDIUM or HIGH"
// @Param   dateGte query string false "inclusive lower date bound"
// @Param   dateLte query string false "inclusive upper date bound"
// @Param   page query int false "page number, default 1"
// @Param   limit query int false "page size 1..100, default 10"
// @Param   sort query string false "id, title, completed, date or priority"
// @Param   order query string false "asc or desc"
// @Security BearerAuth
// @Success 200 {object} presenter.SuccessResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /todos [get]
func (h *TodoHandler) List(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Unauthorized")
	}
	q, violations := parseListQuery(c)
	if len(violations) > 0 {
		return presenter.Error(c, http.StatusBadRequest, strings.Join(violations, ", "))
	}
	result, err := h.uc.List(c.Context(), uid, q)
	if err != nil {
		log.Printf("list todos: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}
	return presenter.Success(c, http.StatusOK, "Success", result)
}

// Update applies a partial patch to a todo owned by the caller.
// @Summary Update a todo by ID
// @Tags    todos
// @Accept  json
// @Produce json
// @Param   id path string true "todo id"
// @Param   input body updateTodoRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} presenter.SuccessResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /todos/{id} [put]
func (h *TodoHandler) Update(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Unauthorized")
	}
	// A non-UUID id cannot match any row, so it reads as not found
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "Todo not found")
	}
	var req updateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Invalid JSON payload")
	}

	in := todo.UpdateInput{Title: req.Title, Completed: req.Completed}
	if req.Date != nil {
		t, ok := parseDate(*req.Date)
		if !ok {
			return presenter.Error(c, http.StatusBadRequest, "Date must be a valid timestamp")
		}
		in.Date = &t
	}
	// Empty priority string means "leave unchanged"
	if req.Priority != nil && *req.Priority != "" {
		p, ok := todo.ParsePriority(*req.Priority)
		if !ok {
			return presenter.Error(c, http.StatusBadRequest, "Priority must be one of LOW, MEDIUM, HIGH")
		}
		in.Priority = &p
	}

	updated, err := h.uc.Update(c.Context(), uid, id, in)
	if err != nil {
		if err == todo.ErrNotFound {
			return presenter.Error(c, http.StatusNotFound, "Todo not found")
		}
		log.Printf("update todo: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}
	return presenter.Success(c, http.StatusOK, "Updated", updated)
}

// Delete removes a todo owned by the caller and returns its prior state.
// @Summary Delete a todo by ID
// @Tags    todos
// @Produce json
// @Param   id path string true "todo id"
// @Security BearerAuth
// @Success 200 {object} presenter.SuccessResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /todos/{id} [delete]
func (h *TodoHandler) Delete(c *fiber.Ctx) error {
	uid, ok := ownerID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "Todo not found")
	}
	deleted, err := h.uc.Delete(c.Context(), uid, id)
	if err != nil {
		if err == todo.ErrNotFound {
			return presenter.Error(c, http.StatusNotFound, "Todo not found")
		}
		log.Printf("delete todo: %v", err)
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}
	return presenter.Success(c, http.StatusOK, "Deleted", deleted)
}
