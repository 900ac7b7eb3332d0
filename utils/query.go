package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds normalized page/limit query values.
type Pagination struct {
	Page  int
	Limit int
}

// Offset is the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads page/limit query params with the defaults and caps
// the API documents (page >= 1, 1 <= limit <= 100, default 50).
func ParsePagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 50)
	if limit < 1 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return Pagination{Page: page, Limit: limit}
}

// SortClause builds an ORDER BY clause from sort_by/sort_order query params,
// restricted to the allowed column names. Unknown fields fall back to the
// default column, unknown orders to ascending.
func SortClause(c *fiber.Ctx, allowed map[string]bool, defaultField string) string {
	field := strings.ToLower(c.Query("sort_by", defaultField))
	if !allowed[field] {
		field = defaultField
	}
	order := strings.ToLower(c.Query("sort_order", "asc"))
	if order != "desc" {
		order = "asc"
	}
	return field + " " + order
}

// LikePattern builds a case-insensitive LIKE pattern for a search term.
func LikePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
