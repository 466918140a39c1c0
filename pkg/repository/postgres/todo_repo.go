package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/todolist/api/pkg/todo"
)

// Whitelist of sortable columns. Sort input is validated upstream, but ORDER BY
// is string-interpolated, so the mapping stays closed here as well.
var sortColumns = map[todo.SortField]string{
	todo.SortID:        "id",
	todo.SortTitle:     "title",
	todo.SortCompleted: "completed",
	todo.SortDate:      "date",
	todo.SortPriority:  "priority",
}

// TodoRepository implements todo.Repository backed by PostgreSQL (pgx).
type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) (*TodoRepository, error) {
	r := &TodoRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *TodoRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS todos (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	date TIMESTAMPTZ NOT NULL,
	priority TEXT NOT NULL DEFAULT 'MEDIUM',
	user_id UUID NOT NULL REFERENCES users(id),
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_user ON todos(user_id);
`)
	return err
}

func (r *TodoRepository) Create(ctx context.Context, t todo.Todo) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO todos (id, title, completed, date, priority, user_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, t.ID, t.Title, t.Completed, t.Date, string(t.Priority), t.UserID, t.CreatedAt)
	return err
}

func (r *TodoRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (todo.Todo, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, completed, date, priority, user_id, created_at
FROM todos WHERE id = $1 AND user_id = $2
`, id, ownerID)
	return scanTodo(row)
}

// where builds the conjunctive filter shared by the page fetch and the count.
// ownerID always comes first; optional filters append in a fixed order.
func buildWhere(ownerID uuid.UUID, q todo.ListQuery) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{ownerID}
	if q.Completed != nil {
		args = append(args, *q.Completed)
		clauses = append(clauses, fmt.Sprintf("completed = $%d", len(args)))
	}
	if q.Priority != nil {
		args = append(args, string(*q.Priority))
		clauses = append(clauses, fmt.Sprintf("priority = $%d", len(args)))
	}
	if q.DateGte != nil {
		args = append(args, *q.DateGte)
		clauses = append(clauses, fmt.Sprintf("date >= $%d", len(args)))
	}
	if q.DateLte != nil {
		args = append(args, *q.DateLte)
		clauses = append(clauses, fmt.Sprintf("date <= $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, q todo.ListQuery) ([]todo.Todo, int, error) {
	where, args := buildWhere(ownerID, q)

	col, ok := sortColumns[q.Sort]
	if !ok {
		col = "date"
	}
	dir := "ASC"
	if q.Order == todo.OrderDesc {
		dir = "DESC"
	}

	countQuery := "SELECT COUNT(*) FROM todos WHERE " + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	pageArgs := append(args, q.Limit, q.Offset())
	pageQuery := fmt.Sprintf(`
SELECT id, title, completed, date, priority, user_id, created_at
FROM todos WHERE %s
ORDER BY %s %s
LIMIT $%d OFFSET $%d
`, where, col, dir, len(pageArgs)-1, len(pageArgs))

	rows, err := r.pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var res []todo.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

func (r *TodoRepository) Update(ctx context.Context, t todo.Todo) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE todos SET title = $1, completed = $2, date = $3, priority = $4
WHERE id = $5 AND user_id = $6
`, t.Title, t.Completed, t.Date, string(t.Priority), t.ID, t.UserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return todo.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return todo.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (todo.Todo, error) {
	var t todo.Todo
	var priority string
	var date, created time.Time
	if err := row.Scan(&t.ID, &t.Title, &t.Completed, &date, &priority, &t.UserID, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return todo.Todo{}, todo.ErrNotFound
		}
		return todo.Todo{}, err
	}
	t.Date = date.UTC()
	t.CreatedAt = created.UTC()
	t.Priority = todo.Priority(priority)
	return t, nil
}
