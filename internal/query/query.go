// Package query implements the listing pipeline shared by every resource:
// filter, then sort, then paginate an in-memory record slice.
package query

import (
	"cmp"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultLimit is the page size applied when the caller does not supply one.
const DefaultLimit = 10

// Options carries the recognised listing parameters of a request.
type Options struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
	Filters   map[string]string
}

// Parse reads listing options from a query string. filterKeys names the
// equality filters the resource recognises (type, status, preferred, ...).
// Numeric parameters that fail to parse fall back to their defaults.
func Parse(values url.Values, filterKeys ...string) Options {
	opts := Options{
		Search:    values.Get("search"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
		Page:      1,
		Limit:     DefaultLimit,
	}
	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		opts.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		opts.Limit = l
	}
	if opts.SortOrder != "asc" {
		opts.SortOrder = "desc"
	}
	if len(filterKeys) > 0 {
		opts.Filters = make(map[string]string, len(filterKeys))
		for _, key := range filterKeys {
			opts.Filters[key] = values.Get(key)
		}
	}
	return opts
}

// Schema describes how the pipeline reads one record type. Sort fields form a
// closed table: an unknown sortBy falls back to DefaultSort instead of
// probing arbitrary fields.
type Schema[T any] struct {
	// Search returns the candidate strings tested by the search filter. A
	// record matches when any candidate contains the needle.
	Search func(T) []string
	// Filters maps filter keys to equality accessors. The literal value
	// "all" or an empty string disables a filter.
	Filters map[string]func(T) string
	// Sort maps allowed sortBy values to three-way comparators.
	Sort map[string]func(a, b T) int
	// DefaultSort is applied when sortBy is empty or unrecognised.
	DefaultSort string
}

// ByString builds a comparator over a string accessor.
func ByString[T any](f func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(f(a), f(b)) }
}

// ByNumber builds a comparator over a numeric accessor.
func ByNumber[T any](f func(T) float64) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(f(a), f(b)) }
}

// ByTime builds a comparator over a timestamp accessor.
func ByTime[T any](f func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return f(a).Compare(f(b)) }
}

// Page is one page of results plus pagination metadata.
type Page[T any] struct {
	Items       []T
	TotalCount  int
	TotalPages  int
	CurrentPage int
	HasNextPage bool
	HasPrevPage bool
}

// Apply runs the full pipeline over records.
func Apply[T any](records []T, opts Options, schema Schema[T]) Page[T] {
	filtered := filter(records, opts, schema)
	sortRecords(filtered, opts, schema)
	return paginate(filtered, opts)
}

func filter[T any](records []T, opts Options, schema Schema[T]) []T {
	out := make([]T, 0, len(records))
	needle := strings.ToLower(strings.TrimSpace(opts.Search))
	for _, rec := range records {
		if needle != "" && schema.Search != nil && !matchesSearch(schema.Search(rec), needle) {
			continue
		}
		if !matchesFilters(rec, opts.Filters, schema.Filters) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesSearch(candidates []string, needle string) bool {
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](rec T, wanted map[string]string, accessors map[string]func(T) string) bool {
	for key, value := range wanted {
		if value == "" || value == "all" {
			continue
		}
		accessor, ok := accessors[key]
		if !ok {
			continue
		}
		if accessor(rec) != value {
			return false
		}
	}
	return true
}

func sortRecords[T any](records []T, opts Options, schema Schema[T]) {
	compare := schema.Sort[opts.SortBy]
	if compare == nil {
		compare = schema.Sort[schema.DefaultSort]
	}
	if compare == nil {
		return
	}
	desc := opts.SortOrder != "asc"
	sort.SliceStable(records, func(i, j int) bool {
		c := compare(records[i], records[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func paginate[T any](records []T, opts Options) Page[T] {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}

	total := len(records)
	start := (page - 1) * limit
	end := start + limit

	var items []T
	if start < total {
		if end > total {
			items = records[start:total]
		} else {
			items = records[start:end]
		}
	} else {
		items = []T{}
	}

	totalPages := (total + limit - 1) / limit

	return Page[T]{
		Items:       items,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNextPage: end < total,
		HasPrevPage: page > 1,
	}
}
