package memory

import (
	"strings"
	"time"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// timeLayout is how the console formats createTime.
const timeLayout = "2006-01-02 15:04:05"

// paginate cuts one page out of items. Out-of-range pages are empty.
func paginate[T any](items []T, q ports.ListQuery) *domain.Page[T] {
	defaults := domain.DefaultPagination()

	page, size := q.Page, q.PageSize
	if page < 1 {
		page = defaults.Page
	}

	if size < 1 {
		size = defaults.PageSize
	}

	records := []T{}

	start := (page - 1) * size
	if start < len(items) {
		end := min(start+size, len(items))
		records = append(records, items[start:end]...)
	}

	return &domain.Page[T]{
		Records: records,
		Current: page,
		Size:    size,
		Total:   len(items),
	}
}

// matches reports whether value contains the filter, ignoring case.
// An empty filter matches everything.
func matches(value, filter string) bool {
	if filter == "" {
		return true
	}

	return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}

func stamp(now func() time.Time) string {
	return now().Format(timeLayout)
}
