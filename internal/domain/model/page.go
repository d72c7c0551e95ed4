package model

// PageRequest bounds a list query.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request to sane values with the provided default limit.
func (p PageRequest) Normalize(defaultLimit int) PageRequest {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	return p
}

// Offset converts the one-based page number to a row offset.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes the page count for a total row count.
func (p PageRequest) TotalPages(total int64) int64 {
	if p.Limit <= 0 {
		return 0
	}
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return pages
}
