package types

// Sort is a field plus direction ordering key for list queries.
type Sort struct {
	// Field names the card attribute to order by.
	Field string

	// Desc orders descending when true, ascending otherwise.
	Desc bool
}

// PageRequest describes one window of a paginated list query.
// Page is zero-based; Size is the fixed window size.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Offset returns the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}
