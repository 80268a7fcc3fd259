package persistence

import "gorm.io/gorm"

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// paginate applies page/pageSize bounds to a query. Page numbering starts at
// one; out-of-range values fall back to sane bounds rather than erroring.
func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
