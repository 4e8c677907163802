package handler

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// NewPaginationMeta creates pagination metadata for a result set.
func NewPaginationMeta(totalItems int64, page, limit int) PaginationMeta {
	if limit <= 0 {
		limit = 1
	}
	return PaginationMeta{
		TotalItems:  totalItems,
		TotalPages:  (int(totalItems) + limit - 1) / limit,
		CurrentPage: page,
		PageSize:    limit,
	}
}
