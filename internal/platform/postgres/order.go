package postgres

import (
	"fmt"
	"strings"

	"github.com/dnwandana/todo-api/internal/pagination"
)

// orderClause builds an ORDER BY clause from a sort column and direction.
// The column and direction are validated upstream against the whitelist, but
// both are re-checked here so an ORDER BY can never be assembled from
// unvetted input. Unknown values fall back to the first allowed column,
// descending.
func orderClause(sortBy, sortOrder string, allowed []string) string {
	column := allowed[0]
	for _, col := range allowed {
		if sortBy == col {
			column = col
			break
		}
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, pagination.OrderAsc) {
		direction = "ASC"
	}

	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}
