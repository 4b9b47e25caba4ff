package models

// Page is the pagination envelope returned by list endpoints. Field
// names mirror what the dashboard front end already consumes.
type Page struct {
	CurrentPage int         `json:"current_page"`
	Data        interface{} `json:"data"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
	LastPage    int         `json:"last_page"`
}

// DefaultPageSize is the fixed page size for list endpoints
const DefaultPageSize = 10

// NewPage builds a Page for the given slice and total count
func NewPage(data interface{}, page int, perPage int, total int64) Page {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return Page{
		CurrentPage: page,
		Data:        data,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
