package pagination

// Page carries one bounded slice of results plus the navigation metadata
// callers use to build prev/next links. Field names follow the shape the
// storefront already consumes.
type Page[T any] struct {
	Docs        []T  `json:"docs"`
	TotalDocs   int  `json:"totalDocs"`
	Limit       int  `json:"limit"`
	Page        int  `json:"page"`
	TotalPages  int  `json:"totalPages"`
	HasPrevPage bool `json:"hasPrevPage"`
	HasNextPage bool `json:"hasNextPage"`
	PrevPage    *int `json:"prevPage"`
	NextPage    *int `json:"nextPage"`
}

const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// Normalize clamps page and limit to their defaults when unset or invalid.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// NewPage builds the metadata around a slice that has already been cut down
// to one page. Both storage drivers go through it so the page shape stays
// identical regardless of where the partitioning happened.
func NewPage[T any](docs []T, totalDocs, page, limit int) Page[T] {
	page, limit = Normalize(page, limit)

	if docs == nil {
		docs = []T{}
	}

	totalPages := (totalDocs + limit - 1) / limit

	result := Page[T]{
		Docs:       docs,
		TotalDocs:  totalDocs,
		Limit:      limit,
		Page:       page,
		TotalPages: totalPages,
	}

	if page > 1 {
		prev := page - 1
		result.HasPrevPage = true
		result.PrevPage = &prev
	}

	if page < totalPages {
		next := page + 1
		result.HasNextPage = true
		result.NextPage = &next
	}

	return result
}

// Paginate partitions items into pages of limit and returns the requested
// 1-based page. A page past the end yields an empty Docs list, never an
// error.
func Paginate[T any](items []T, page, limit int) Page[T] {
	page, limit = Normalize(page, limit)

	start := (page - 1) * limit
	end := start + limit

	docs := []T{}
	if start < len(items) {
		if end > len(items) {
			end = len(items)
		}
		docs = items[start:end]
	}

	return NewPage(docs, len(items), page, limit)
}
