package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todolist/api/pkg/todo"
)

// runParse feeds a raw query string through a real fiber context.
func runParse(t *testing.T, rawQuery string) (todo.ListQuery, []string) {
	t.Helper()
	var q todo.ListQuery
	var violations []string
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		q, violations = parseListQuery(c)
		return c.SendStatus(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	_, err := app.Test(req)
	require.NoError(t, err)
	return q, violations
}

func TestParseListQueryDefaults(t *testing.T) {
	q, violations := runParse(t, "")
	assert.Empty(t, violations)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, todo.SortDate, q.Sort)
	assert.Equal(t, todo.OrderAsc, q.Order)
	assert.Nil(t, q.Completed)
	assert.Nil(t, q.Priority)
	assert.Nil(t, q.DateGte)
	assert.Nil(t, q.DateLte)
}

func TestParseListQueryAllFilters(t *testing.T) {
	q, violations := runParse(t, "completed=false&priority=LOW&dateGte=2026-01-01&dateLte=2026-02-01T12:30:00Z&page=3&limit=25&sort=priority&order=desc")
	assert.Empty(t, violations)

	require.NotNil(t, q.Completed)
	assert.False(t, *q.Completed)
	require.NotNil(t, q.Priority)
	assert.Equal(t, todo.PriorityLow, *q.Priority)
	require.NotNil(t, q.DateGte)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *q.DateGte)
	require.NotNil(t, q.DateLte)
	assert.Equal(t, time.Date(2026, 2, 1, 12, 30, 0, 0, time.UTC), *q.DateLte)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, todo.SortPriority, q.Sort)
	assert.Equal(t, todo.OrderDesc, q.Order)
	assert.Equal(t, 50, q.Offset())
}

func TestParseListQueryViolations(t *testing.T) {
	cases := []struct {
		name     string
		rawQuery string
		want     string
	}{
		{"page zero", "page=0", "Page must be a positive integer"},
		{"page not a number", "page=abc", "Page must be a positive integer"},
		{"limit too large", "limit=101", "Limit must be an integer between 1 and 100"},
		{"limit zero", "limit=0", "Limit must be an integer between 1 and 100"},
		{"bad priority", "priority=urgent", "Priority must be one of LOW, MEDIUM, HIGH"},
		{"bad completed", "completed=maybe", "Completed must be true or false"},
		{"bad sort", "sort=owner", "Sort must be one of id, title, completed, date, priority"},
		{"bad order", "order=sideways", "Order must be asc or desc"},
		{"bad dateGte", "dateGte=yesterday", "dateGte must be a valid timestamp"},
		{"bad dateLte", "dateLte=tomorrow", "dateLte must be a valid timestamp"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, violations := runParse(t, tc.rawQuery)
			require.Len(t, violations, 1)
			assert.Equal(t, tc.want, violations[0])
		})
	}
}

func TestParseListQueryCollectsAllViolations(t *testing.T) {
	_, violations := runParse(t, "page=-1&limit=1000&order=up")
	assert.Len(t, violations, 3)
}
