package query

import (
	"net/url"
	"strconv"

	"github.com/corehr/corehr-backend/internal/apperror"
)

// ParseOptions builds list-query Options from URL query parameters.
// Only the named filter keys are picked up as exact-match filters;
// page, limit, search, sort_by, and sort_order are shared across all
// list endpoints.
func ParseOptions(values url.Values, filterKeys ...string) (Options, error) {
	opts := Options{
		Search: values.Get("search"),
		SortBy: values.Get("sort_by"),
	}

	switch order := values.Get("sort_order"); order {
	case "", string(OrderDesc):
		opts.SortOrder = OrderDesc
	case string(OrderAsc):
		opts.SortOrder = OrderAsc
	default:
		return Options{}, apperror.InvalidArgument("sort_order must be asc or desc, got %q", order)
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Options{}, apperror.InvalidArgument("page must be a positive integer, got %q", raw)
		}
		opts.Page = page
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return Options{}, apperror.InvalidArgument("limit must be a positive integer, got %q", raw)
		}
		opts.Limit = limit
	}

	for _, key := range filterKeys {
		if v := values.Get(key); v != "" {
			if opts.Filters == nil {
				opts.Filters = make(map[string]string)
			}
			opts.Filters[key] = v
		}
	}
	return opts, nil
}
