package persistence

import (
	"strings"

	"github.com/gym/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPaging applies Limit/Skip and an ORDER BY restricted to sortable.
// Unknown sort columns fall back to fallbackOrder.
func applyPaging(query *gorm.DB, filter shared.Filter, sortable map[string]bool, fallbackOrder string) *gorm.DB {
	if filter.Limit > 0 {
		limit := filter.Limit
		if limit > shared.MaxPageSize {
			limit = shared.MaxPageSize
		}
		query = query.Limit(limit)
	}
	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}

	if filter.OrderBy != "" && sortable[filter.OrderBy] {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, shared.OrderDesc) {
			dir = "DESC"
		}
		// id breaks ties so pages are stable
		return query.Order(filter.OrderBy + " " + dir).Order("id ASC")
	}
	return query.Order(fallbackOrder)
}

// likePattern builds a case-insensitive LIKE pattern usable on postgres and sqlite
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
