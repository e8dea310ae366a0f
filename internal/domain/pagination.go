package domain

// Query keys for paginated list operations.
const (
	ParamPage     = "page"
	ParamPageSize = "pageSize"
)

// PaginationParams are the defaults merged into every list query.
type PaginationParams struct {
	Page     int `json:"page"     koanf:"page"      validate:"min=1"`
	PageSize int `json:"pageSize" koanf:"page_size" validate:"min=1"`
}

// DefaultPagination returns the page 1 / size 10 defaults.
func DefaultPagination() PaginationParams {
	return PaginationParams{Page: 1, PageSize: 10}
}

// AsMap returns the params keyed by their query names.
func (p PaginationParams) AsMap() map[string]any {
	return map[string]any{
		ParamPage:     p.Page,
		ParamPageSize: p.PageSize,
	}
}

// MergeParams overlays overrides on top of defaults, one key at a time.
// Neither input is mutated. A nil overrides map yields the defaults.
func MergeParams(defaults PaginationParams, overrides map[string]any) map[string]any {
	merged := defaults.AsMap()
	for k, v := range overrides {
		merged[k] = v
	}

	return merged
}

// Page is a single page of records as returned by list endpoints.
type Page[T any] struct {
	Records []T `json:"records"`
	Current int `json:"current"`
	Size    int `json:"size"`
	Total   int `json:"total"`
}
