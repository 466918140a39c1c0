package todo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateInput carries the client-controlled fields for a new todo. Optional
// fields fall back to their documented defaults when nil.
type CreateInput struct {
	Title     string
	Completed *bool
	Date      *time.Time
	Priority  *Priority
}

// UpdateInput is a partial patch: nil means "leave unchanged".
type UpdateInput struct {
	Title     *string
	Completed *bool
	Date      *time.Time
	Priority  *Priority
}

// UseCase encapsulates owner-scoped CRUD over todos.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Todo, error)
	List(ctx context.Context, ownerID uuid.UUID, q ListQuery) (ListResult, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (Todo, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (Todo, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (Todo, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Todo{}, ErrValidation("Title is required")
	}
	now := time.Now().UTC()
	t := Todo{
		ID:        uuid.New(),
		Title:     in.Title,
		Completed: false,
		Date:      now,
		Priority:  PriorityMedium,
		UserID:    ownerID,
		CreatedAt: now,
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.Date != nil {
		t.Date = in.Date.UTC()
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Todo{}, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, q ListQuery) (ListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Sort == "" {
		q.Sort = SortDate
	}
	if q.Order == "" {
		q.Order = OrderAsc
	}
	items, total, err := s.repo.ListByOwner(ctx, ownerID, q)
	if err != nil {
		return ListResult{}, err
	}
	if items == nil {
		items = []Todo{}
	}
	return ListResult{
		Todos:       items,
		TotalTodos:  total,
		HasNextPage: q.Page*q.Limit < total,
		// Always page+1; HasNextPage tells whether it exists
		NextPage: q.Page + 1,
	}, nil
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (Todo, error) {
	t, err := s.repo.GetByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return Todo{}, err
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	if in.Date != nil {
		t.Date = in.Date.UTC()
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return Todo{}, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) (Todo, error) {
	t, err := s.repo.GetByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return Todo{}, err
	}
	if err := s.repo.DeleteForOwner(ctx, ownerID, id); err != nil {
		return Todo{}, err
	}
	return t, nil
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
