package repository

// Defaults applied when a PageRequest arrives unnormalized.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// PageRequest carries page/limit query parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request: page >= 1, limit defaulted and capped. The
// cap keeps a single request from forcing an unbounded scan.
func (p PageRequest) Normalize(defaultLimit, maxLimit int) PageRequest {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxPageLimit
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset computes the rows skipped for the current page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta is the pagination block of list responses.
type PageMeta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	Limit       int   `json:"limit"`
}

// NewPageMeta derives response metadata from a normalized request and the
// COUNT(*) result. totalPages is ceil(totalItems/limit).
func NewPageMeta(req PageRequest, totalItems int64) PageMeta {
	totalPages := 0
	if req.Limit > 0 {
		totalPages = int((totalItems + int64(req.Limit) - 1) / int64(req.Limit))
	}
	return PageMeta{
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		Limit:       req.Limit,
	}
}
