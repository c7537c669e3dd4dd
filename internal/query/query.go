package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/corehr/corehr-backend/internal/apperror"
)

// Order is the sort direction for a list query.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const defaultLimit = 10

// Options is the list-query shape shared by every entity type:
// exact-match filters, a free-text search term, a sort field/direction,
// and a 1-indexed page window.
type Options struct {
	Filters   map[string]string
	Search    string
	SortBy    string
	SortOrder Order
	Page      int
	Limit     int
}

// Page is one window of a filtered, sorted sequence plus the total
// number of matches before pagination.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Descriptor adapts one entity type to the pipeline: a field accessor,
// the fields the search term scans, and the default sort field.
type Descriptor[T any] struct {
	DefaultSort  string
	SearchFields []string
	// Field resolves a named field on a record. It returns false when
	// the field is unknown or unset on this record.
	Field func(rec T, name string) (interface{}, bool)
}

// Run applies filter, sort, and paginate in that order. Total counts
// matches before the page window is cut; an out-of-range page yields
// empty items, never an error. Zero page/limit take defaults; negative
// values are rejected.
func Run[T any](records []T, d Descriptor[T], opts Options) (Page[T], error) {
	if opts.Page == 0 {
		opts.Page = 1
	}
	if opts.Limit == 0 {
		opts.Limit = defaultLimit
	}
	if opts.Page < 1 {
		return Page[T]{}, apperror.InvalidArgument("page must be >= 1, got %d", opts.Page)
	}
	if opts.Limit < 1 {
		return Page[T]{}, apperror.InvalidArgument("limit must be >= 1, got %d", opts.Limit)
	}

	filtered := make([]T, 0, len(records))
	for _, rec := range records {
		if matches(rec, d, opts) {
			filtered = append(filtered, rec)
		}
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = d.DefaultSort
	}
	desc := opts.SortOrder != OrderAsc

	// Stable sort: ties keep filtered order. Records missing the sort
	// field always order after records that have it, even under desc.
	sort.SliceStable(filtered, func(i, j int) bool {
		av, aok := d.Field(filtered[i], sortBy)
		bv, bok := d.Field(filtered[j], sortBy)
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		c := compare(av, bv)
		if desc {
			return c > 0
		}
		return c < 0
	})

	total := len(filtered)
	start := (opts.Page - 1) * opts.Limit
	if start >= total {
		return Page[T]{Items: []T{}, Total: total}, nil
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return Page[T]{Items: filtered[start:end], Total: total}, nil
}

func matches[T any](rec T, d Descriptor[T], opts Options) bool {
	for name, want := range opts.Filters {
		if want == "" {
			continue
		}
		v, ok := d.Field(rec, name)
		if !ok || fieldString(v) != want {
			return false
		}
	}
	if opts.Search != "" {
		term := strings.ToLower(opts.Search)
		found := false
		for _, name := range d.SearchFields {
			v, ok := d.Field(rec, name)
			if ok && strings.Contains(strings.ToLower(fieldString(v)), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// compare resolves a comparator by the runtime types of the two values:
// strings case-folded, numbers numerically, times chronologically, and
// anything else by string coercion.
func compare(a, b interface{}) int {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			if c := strings.Compare(strings.ToLower(as), strings.ToLower(bs)); c != 0 {
				return c
			}
			return strings.Compare(as, bs)
		}
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(fieldString(a), fieldString(b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func fieldString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case time.Time:
		return s.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
