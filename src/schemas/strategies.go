package schemas

// All dates in this package are calendar-date strings (YYYY-MM-DD). Native
// time values stay inside the process; only strings cross the API boundary.

type CreateStrategyRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate"`
	InitialNav  float64 `json:"initialNav"`
}

type StrategyResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate"`
	InitialNav  float64 `json:"initialNav"`
	CreatedAt   string  `json:"createdAt"`
}
