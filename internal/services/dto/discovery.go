package dto

// DiscoverDesignersRequest - designer search filters, bound from
// query parameters
type DiscoverDesignersRequest struct {
	Search    string `form:"search"`
	Skill     string `form:"skill"`
	RateRange string `form:"rate_range" validate:"omitempty,is-rate-range"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset    int    `form:"offset" binding:"omitempty,min=0"`
}

// DiscoverDesignersResponse - paginated designer listing
type DiscoverDesignersResponse struct {
	Designers []ProfileDTO `json:"designers"`
	Total     int64        `json:"total"`
	Limit     int          `json:"limit"`
	Offset    int          `json:"offset"`
}
