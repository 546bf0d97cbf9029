package schemas

// RecordInvestmentRequest carries an always-positive amount; direction is the
// type tag, never the sign. Signed amounts are rejected outright.
type RecordInvestmentRequest struct {
	InvestorID int64   `json:"investorId"`
	ProductID  int64   `json:"productId"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	Type       string  `json:"type"`
}

type InvestmentResponse struct {
	ID           int64   `json:"id"`
	InvestorID   int64   `json:"investorId"`
	InvestorName string  `json:"investorName,omitempty"`
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName,omitempty"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Shares       float64 `json:"shares"`
	NavAtTrade   float64 `json:"navAtTrade"`
	Type         string  `json:"type"`
}
