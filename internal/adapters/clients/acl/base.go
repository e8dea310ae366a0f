package acl

import (
	"github.com/jsamuelsen/console-client/internal/domain"
)

// BaseAdapter carries what every façade shares: the normalizer and the
// pagination defaults merged into list queries. Embed it in façades.
type BaseAdapter struct {
	normalizer *Normalizer
	pagination domain.PaginationParams
}

// NewBaseAdapter creates a base adapter. Pagination values below 1 fall back
// to page 1 and size 10.
func NewBaseAdapter(n *Normalizer, pagination domain.PaginationParams) BaseAdapter {
	defaults := domain.DefaultPagination()
	if pagination.Page < 1 {
		pagination.Page = defaults.Page
	}

	if pagination.PageSize < 1 {
		pagination.PageSize = defaults.PageSize
	}

	return BaseAdapter{normalizer: n, pagination: pagination}
}

// Normalizer returns the shared normalizer.
func (a *BaseAdapter) Normalizer() *Normalizer {
	return a.normalizer
}

// Pagination returns the defaults merged into list queries.
func (a *BaseAdapter) Pagination() domain.PaginationParams {
	return a.pagination
}

// listSpec builds a list request with pagination defaults under the caller's params.
func (a *BaseAdapter) listSpec(op Operation, params map[string]any) domain.RequestSpec {
	return domain.RequestSpec{
		Method: op.Method,
		Path:   op.Path,
		Query:  domain.MergeParams(a.pagination, params),
	}
}

// bodySpec builds a request carrying body.
func bodySpec(op Operation, body any) domain.RequestSpec {
	return domain.RequestSpec{
		Method: op.Method,
		Path:   op.Path,
		Body:   body,
	}
}

// querySpec builds a body-less request with query parameters.
func querySpec(op Operation, params map[string]any) domain.RequestSpec {
	return domain.RequestSpec{
		Method: op.Method,
		Path:   op.Path,
		Query:  params,
	}
}
