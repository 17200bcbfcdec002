package memory

import (
	"sort"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
)

// windowByCreatedAt applies OrderBy and Pagination specs to an already
// filtered result set. The listing queries only ever order on created_at,
// so that is the single field the fakes support.
func windowByCreatedAt[T any](items []T, createdAt func(T) time.Time, specs []specification.Specification) []T {
	for _, sp := range specs {
		if ob, ok := sp.(specification.OrderBy); ok && ob.Field == "created_at" {
			sort.SliceStable(items, func(i, j int) bool {
				if ob.Desc {
					return createdAt(items[i]).After(createdAt(items[j]))
				}
				return createdAt(items[i]).Before(createdAt(items[j]))
			})
		}
	}
	for _, sp := range specs {
		if pg, ok := sp.(specification.Pagination); ok {
			if pg.Offset >= len(items) {
				return nil
			}
			items = items[pg.Offset:]
			if pg.Limit > 0 && pg.Limit < len(items) {
				items = items[:pg.Limit]
			}
		}
	}
	return items
}
