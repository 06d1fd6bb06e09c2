package request

// FinalizeDueRequest carries the optional customer details of a due bill
type FinalizeDueRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	PhotoURI *string `json:"photo_uri"`
}

// ListDuesRequest filters the dues list
type ListDuesRequest struct {
	Outstanding bool `form:"outstanding"`
	Page        int  `form:"page"`
	PerPage     int  `form:"per_page"`
}

// HistoryRequest limits the history list
type HistoryRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}
