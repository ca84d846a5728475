package pagination

import "github.com/gofiber/fiber/v2"

// Page-size defaults. The limit is capped so a client cannot pull an
// unbounded page of positions or withdrawals in one request.
const (
	defaultLimit = 20
	maxLimit     = 100
)

// Params carries the resolved page window for a list query
type Params struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// GetParams resolves page/limit query values, clamping them into range
func GetParams(c *fiber.Ctx) *Params {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	return &Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Meta describes the returned window relative to the full result set
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Response wraps one page of data with its meta block
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta"`
}

// NewResponse builds the paginated payload returned by list endpoints
func NewResponse(data any, params *Params, total int64) *Response {
	pages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	return &Response{
		Data: data,
		Meta: &Meta{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: pages,
			HasNext:    params.Page < pages,
			HasPrev:    params.Page > 1,
		},
	}
}
