package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/todolist/api/pkg/todo"
)

// Accepted layouts for dateGte/dateLte. RFC 3339 first, plain date as fallback.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseListQuery validates the listing parameters and assembles a ListQuery.
// All violations are collected so the client sees every problem at once.
func parseListQuery(c *fiber.Ctx) (todo.ListQuery, []string) {
	q := todo.ListQuery{
		Page:  1,
		Limit: 10,
		Sort:  todo.SortDate,
		Order: todo.OrderAsc,
	}
	var violations []string

	if v := strings.TrimSpace(c.Query("completed")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			violations = append(violations, "Completed must be true or false")
		} else {
			q.Completed = &b
		}
	}
	if v := strings.TrimSpace(c.Query("priority")); v != "" {
		p, ok := todo.ParsePriority(v)
		if !ok {
			violations = append(violations, "Priority must be one of LOW, MEDIUM, HIGH")
		} else {
			q.Priority = &p
		}
	}
	if v := strings.TrimSpace(c.Query("dateGte")); v != "" {
		t, ok := parseDate(v)
		if !ok {
			violations = append(violations, "dateGte must be a valid timestamp")
		} else {
			q.DateGte = &t
		}
	}
	if v := strings.TrimSpace(c.Query("dateLte")); v != "" {
		t, ok := parseDate(v)
		if !ok {
			violations = append(violations, "dateLte must be a valid timestamp")
		} else {
			q.DateLte = &t
		}
	}
	if v := strings.TrimSpace(c.Query("page")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			violations = append(violations, "Page must be a positive integer")
		} else {
			q.Page = n
		}
	}
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			violations = append(violations, "Limit must be an integer between 1 and 100")
		} else {
			q.Limit = n
		}
	}
	if v := strings.TrimSpace(c.Query("sort")); v != "" {
		s, ok := todo.ParseSortField(v)
		if !ok {
			violations = append(violations, "Sort must be one of id, title, completed, date, priority")
		} else {
			q.Sort = s
		}
	}
	if v := strings.TrimSpace(c.Query("order")); v != "" {
		o, ok := todo.ParseSortOrder(v)
		if !ok {
			violations = append(violations, "Order must be asc or desc")
		} else {
			q.Order = o
		}
	}

	return q, violations
}
