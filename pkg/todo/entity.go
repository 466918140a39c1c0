package todo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("todo not found")

// Priority of a todo item. Stored as text.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority maps a raw string onto a known priority level.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

// Todo is a single task owned by exactly one user. The owner is set at creation
// and never reassigned.
type Todo struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Date      time.Time `json:"date"`
	Priority  Priority  `json:"priority"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SortField enumerates the columns a listing may be ordered by.
type SortField string

const (
	SortID        SortField = "id"
	SortTitle     SortField = "title"
	SortCompleted SortField = "completed"
	SortDate      SortField = "date"
	SortPriority  SortField = "priority"
)

func ParseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortID, SortTitle, SortCompleted, SortDate, SortPriority:
		return SortField(s), true
	}
	return "", false
}

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case OrderAsc, OrderDesc:
		return SortOrder(s), true
	}
	return "", false
}

// ListQuery carries the optional filters plus pagination/ordering for a scoped
// listing. Nil pointer means "no filter on this field". Date bounds are
// inclusive; DateGte > DateLte is not an error, just an empty result.
type ListQuery struct {
	Completed *bool
	Priority  *Priority
	DateGte   *time.Time
	DateLte   *time.Time
	Page      int
	Limit     int
	Sort      SortField
	Order     SortOrder
}

// Offset converts page/limit into the store's skip count.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ListResult is the pagination envelope returned to clients. NextPage is always
// Page+1; callers must consult HasNextPage to decide whether it is meaningful.
type ListResult struct {
	Todos       []Todo `json:"todos"`
	TotalTodos  int    `json:"totalTodos"`
	HasNextPage bool   `json:"hasNextPage"`
	NextPage    int    `json:"nextPage"`
}

// Repository is the persistence port for todos. Every read/write is scoped to
// an owner; no implementation may return another user's rows.
type Repository interface {
	Create(ctx context.Context, t Todo) error
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Todo, error)
	// ListByOwner returns one page of matches plus the total count honoring
	// the same filters but ignoring pagination.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, q ListQuery) ([]Todo, int, error)
	Update(ctx context.Context, t Todo) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
