// Package option contains composable gorm query options shared by repositories.
package option

import (
	"github.com/smallbiznis/tipfolio/pkg/db/pagination"
	"gorm.io/gorm"
)

type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type queryOptionFunc func(*gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// ApplyPagination decodes the cursor token and applies keyset pagination on
// the caller's cursor column. One extra row is fetched so callers can detect
// whether more pages exist.
func ApplyPagination(page pagination.Pagination, cursorColumn string) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = 50
		}
		if size > 250 {
			size = 250
		}

		if page.PageToken != "" && cursorColumn != "" {
			cursor, err := pagination.DecodeCursor(page.PageToken)
			if err == nil && cursor.Date != "" {
				db = db.Where(cursorColumn+" < ?", cursor.Date)
			}
		}

		return db.Limit(size + 1)
	})
}
