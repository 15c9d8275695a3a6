package models

// APIResponse is the envelope returned by every mutating endpoint
type APIResponse struct {
	Success bool                `json:"success"`
	Data    interface{}         `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// PaginatedData is the inner pagination block of every list endpoint.
// All counters are server-authoritative; clients only display and clamp.
type PaginatedData struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
	From        int         `json:"from"`
	To          int         `json:"to"`
}

// ListResponse is the envelope returned by every list endpoint
type ListResponse struct {
	Success bool          `json:"success"`
	Data    PaginatedData `json:"data"`
	Message string        `json:"message,omitempty"`
}

// NewPaginatedData computes the pagination block for a page slice.
// count is the number of items on this page, total the filtered total.
func NewPaginatedData(items interface{}, count int, total int64, page, perPage int) PaginatedData {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if count > 0 {
		from = (page-1)*perPage + 1
		to = from + count - 1
	}

	return PaginatedData{
		Data:        items,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
		From:        from,
		To:          to,
	}
}

// ClampPage normalizes page and per_page query values.
// page is clamped to >= 1 and per_page to [1, 100].
func ClampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}
