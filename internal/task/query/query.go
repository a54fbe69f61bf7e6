// Package query builds owner-scoped task list queries from request parameters.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Unset marks an absent limit or skip value.
const Unset = -1

// ListQuery describes the filter, sort, and pagination of one task listing.
//
// The author scope is not part of the query: the store applies it
// unconditionally and no parameter can override it.
type ListQuery struct {
	// Completed filters by completion state when non-nil.
	Completed *bool
	// SortField names the task field to order by. Stores ignore fields
	// they do not recognize, leaving the default creation order.
	SortField string
	// SortDesc orders descending when true. Only the literal direction
	// token "desc" selects it.
	SortDesc bool
	// Limit and Skip page the result. Unset means no limit / no skip.
	Limit int
	Skip  int
}

// Parse extracts a ListQuery from raw request parameters.
//
// Parsing is tolerant by contract: unknown keys are ignored, a malformed
// completed value means no filter, and non-numeric or negative limit/skip
// degrade to unset rather than erroring.
func Parse(values url.Values) ListQuery {
	q := ListQuery{Limit: Unset, Skip: Unset}

	switch values.Get("completed") {
	case "true":
		completed := true
		q.Completed = &completed
	case "false":
		completed := false
		q.Completed = &completed
	}

	if sortBy := values.Get("sortBy"); sortBy != "" {
		field, direction, _ := strings.Cut(sortBy, ":")
		q.SortField = field
		q.SortDesc = direction == "desc"
	}

	q.Limit = parseBound(values.Get("limit"))
	q.Skip = parseBound(values.Get("skip"))
	return q
}

func parseBound(raw string) int {
	if raw == "" {
		return Unset
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return Unset
	}
	return value
}
