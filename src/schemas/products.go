package schemas

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

type WeightInput struct {
	StrategyID int64   `json:"strategyId"`
	Weight     float64 `json:"weight"`
}

// SetWeightsRequest commits one effective-date batch of a product's weight
// schedule. The batch should sum to 1.0; a partial batch is accepted and only
// flagged as an advisory.
type SetWeightsRequest struct {
	EffectiveDate string        `json:"effectiveDate"`
	Weights       []WeightInput `json:"weights"`
}

type ProductWeightResponse struct {
	StrategyID    int64   `json:"strategyId"`
	StrategyName  string  `json:"strategyName"`
	Weight        float64 `json:"weight"`
	EffectiveDate string  `json:"effectiveDate"`
}

type ProductNavResponse struct {
	ProductID int64   `json:"productId"`
	Date      string  `json:"date"`
	Nav       float64 `json:"nav"`
}

type NavPoint struct {
	Date string  `json:"date"`
	Nav  float64 `json:"nav"`
}

type ProductNavHistoryResponse struct {
	ProductID int64      `json:"productId"`
	Points    []NavPoint `json:"points"`
}
