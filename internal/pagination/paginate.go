package pagination

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Meta describes the position of a page within the full result set.
type Meta struct {
	CurrentPage     int   `json:"current_page"`
	TotalPages      int   `json:"total_pages"`
	TotalItems      int64 `json:"total_items"`
	ItemsPerPage    int   `json:"items_per_page"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
	NextPage        *int  `json:"next_page"`
	PreviousPage    *int  `json:"previous_page"`
}

// NewMeta builds pagination metadata for the given page, limit and total item
// count. TotalPages is ceil(total/limit); an empty result set has zero pages.
func NewMeta(page, limit int, total int64) Meta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	meta := Meta{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}

	if meta.HasNextPage {
		next := page + 1
		meta.NextPage = &next
	}
	if meta.HasPreviousPage {
		prev := page - 1
		meta.PreviousPage = &prev
	}

	return meta
}

// ListOptions is the snapshot of limit, offset, ordering and search filter
// that both the count and fetch collaborators observe, so the reported total
// always matches the population the page is drawn from.
type ListOptions struct {
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string

	// SearchPattern is the escaped, wildcard-wrapped search term, or empty
	// when the request carries no search.
	SearchPattern string
}

// CountFunc counts the records matching the base conditions plus the given
// search pattern.
type CountFunc func(ctx context.Context, searchPattern string) (int64, error)

// FetchFunc fetches one page of records under the given options.
type FetchFunc[T any] func(ctx context.Context, opts ListOptions) ([]T, error)

// Page is a page of records together with its pagination metadata.
type Page[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// Paginate validates params against sortableColumns, then issues the count
// and fetch calls concurrently and assembles the result. Validation failures
// short-circuit before either collaborator is called; if either collaborator
// fails, its error is returned and the sibling call is cancelled through the
// shared context.
func Paginate[T any](
	ctx context.Context,
	params Params,
	sortableColumns []string,
	count CountFunc,
	fetch FetchFunc[T],
) (*Page[T], error) {
	if err := params.Validate(sortableColumns); err != nil {
		return nil, err
	}

	opts := ListOptions{
		Limit:         params.Limit,
		Offset:        params.Offset(),
		SortBy:        params.SortBy,
		SortOrder:     params.SortOrder,
		SearchPattern: params.SearchPattern(),
	}

	var (
		total int64
		items []T
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = count(gctx, opts.SearchPattern)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = fetch(gctx, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []T{}
	}

	return &Page[T]{
		Data:       items,
		Pagination: NewMeta(params.Page, params.Limit, total),
	}, nil
}
