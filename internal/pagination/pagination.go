package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Query parameter names and bounds for paginated list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100

	MaxSearchLength = 255

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Common validation errors
var (
	ErrInvalidPage      = errors.New("page must be a positive integer")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 100")
	ErrInvalidSortOrder = errors.New("sort_order must be asc or desc")
	ErrInvalidSortField = errors.New("invalid sort_by field")
	ErrSearchTooLong    = errors.New("search must be at most 255 characters long")
)

// Params holds the validated inputs of a paginated list request.
type Params struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
}

// ParamsFromQuery parses pagination parameters from URL query values,
// applying defaults for absent values. Numeric parameters that do not parse
// are rejected outright rather than silently defaulted.
func ParamsFromQuery(q url.Values) (Params, error) {
	p := Params{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    q.Get("sort_by"),
		SortOrder: OrderDesc,
		Search:    q.Get("search"),
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, fmt.Errorf("%w: %q", ErrInvalidPage, raw)
		}
		p.Page = page
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, fmt.Errorf("%w: %q", ErrInvalidLimit, raw)
		}
		p.Limit = limit
	}

	if raw := q.Get("sort_order"); raw != "" {
		p.SortOrder = strings.ToLower(raw)
	}

	return p, nil
}

// Validate checks the params against the caller's sortable-columns whitelist
// and fills in the default sort column (the first whitelist entry) when
// sort_by was omitted. Validation failures identify the offending field and
// happen before any data access.
func (p *Params) Validate(sortableColumns []string) error {
	if p.Page < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.Limit < MinLimit || p.Limit > MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	}
	if p.SortOrder != OrderAsc && p.SortOrder != OrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	if utf8.RuneCountInString(p.Search) > MaxSearchLength {
		return ErrSearchTooLong
	}

	if p.SortBy == "" {
		if len(sortableColumns) == 0 {
			return fmt.Errorf("%w: no sortable columns declared", ErrInvalidSortField)
		}
		p.SortBy = sortableColumns[0]
		return nil
	}

	for _, col := range sortableColumns {
		if p.SortBy == col {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not sortable", ErrInvalidSortField, p.SortBy)
}

// Offset computes the row offset of the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// SearchPattern returns the escaped, wildcard-wrapped pattern for the search
// term, or the empty string when no search was requested. The caller matches
// it with a case-insensitive LIKE using backslash as the escape character.
func (p Params) SearchPattern() string {
	if p.Search == "" {
		return ""
	}
	return "%" + EscapeLike(p.Search) + "%"
}

// likeEscaper escapes the characters that are wildcards or the escape
// character in SQL LIKE patterns. Backslash is replaced first so user input
// is always matched literally, never interpreted as a pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes `\`, `%` and `_` in s for literal LIKE matching.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
