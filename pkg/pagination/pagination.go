// Package pagination holds the page/pageSize arithmetic every list endpoint
// shares: one COUNT(*) plus one LIMIT/OFFSET query, summarized for clients.
package pagination

// Params selects one page of results. Page is 1-based.
type Params struct {
	Page     int `query:"page" json:"page,omitempty" default:"1" validate:"min=1"`
	PageSize int `query:"pageSize" json:"pageSize,omitempty" default:"20" validate:"min=1,max=100"`
}

func (p Params) Limit() int {
	return p.PageSize
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Metadata describes the page that was returned.
type Metadata struct {
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
}

// NewMetadata computes the page summary; TotalPages is ceil(total/pageSize).
func NewMetadata(total int, params Params) Metadata {
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.PageSize - 1) / params.PageSize
	}
	return Metadata{
		Total:       total,
		CurrentPage: params.Page,
		TotalPages:  totalPages,
		PageSize:    params.PageSize,
	}
}
