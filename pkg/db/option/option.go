// Package option holds composable gorm query modifiers shared by the
// repositories.
package option

import (
	"fmt"
	"strings"

	"github.com/mietwerklabs/mietwerk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Option interface {
	Apply(stmt *gorm.DB) *gorm.DB
}

type optionFunc func(stmt *gorm.DB) *gorm.DB

func (f optionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

// WithQuerySortBy sanitizes a user-supplied sort column against an allow
// list and normalizes the direction. Unknown columns fall back to created_at
// descending.
func WithQuerySortBy(sortBy, orderBy string, allowed map[string]bool) string {
	column := strings.TrimSpace(strings.ToLower(sortBy))
	if !allowed[column] {
		column = "created_at"
	}
	direction := "desc"
	if strings.EqualFold(strings.TrimSpace(orderBy), "asc") {
		direction = "asc"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

func WithSortBy(order string) Option {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		if strings.TrimSpace(order) == "" {
			return stmt
		}
		return stmt.Order(order)
	})
}

// ApplyPagination applies keyset pagination: rows strictly after the cursor
// in (created_at desc, id desc) order, over-fetching one row so the caller
// can detect another page.
func ApplyPagination(page pagination.Pagination) Option {
	return optionFunc(func(stmt *gorm.DB) *gorm.DB {
		if page.PageToken != "" {
			cursor, err := pagination.DecodeCursor(page.PageToken)
			if err == nil {
				stmt = stmt.Where(
					"(created_at < ?) OR (created_at = ? AND id < ?)",
					cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
				)
			}
		}
		if page.PageSize > 0 {
			stmt = stmt.Limit(page.PageSize + 1)
		}
		return stmt
	})
}
