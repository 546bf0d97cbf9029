package schemas

type RecordNavRequest struct {
	Date     string  `json:"date"`
	NavValue float64 `json:"navValue"`
}

type NavRecordResponse struct {
	ID           int64   `json:"id"`
	StrategyID   int64   `json:"strategyId"`
	StrategyName string  `json:"strategyName,omitempty"`
	Date         string  `json:"date"`
	NavValue     float64 `json:"navValue"`
	// ReturnRate is null for a strategy's first observation.
	ReturnRate *float64 `json:"returnRate"`
}
