package schemas

// HoldingView is one investor position in one product, valued at "now".
type HoldingView struct {
	ProductID        int64   `json:"productId"`
	ProductName      string  `json:"productName"`
	NetInvested      float64 `json:"netInvested"`
	NetShares        float64 `json:"netShares"`
	CurrentNav       float64 `json:"currentNav"`
	CurrentValue     float64 `json:"currentValue"`
	ProfitLoss       float64 `json:"profitLoss"`
	ProfitRate       float64 `json:"profitRate"`
	TransactionCount int     `json:"transactionCount"`
}

type DashboardResponse struct {
	StrategyCount   int                  `json:"strategyCount"`
	ProductCount    int                  `json:"productCount"`
	InvestorCount   int                  `json:"investorCount"`
	InvestmentCount int                  `json:"investmentCount"`
	ProductNavs     []ProductNavResponse `json:"productNavs"`
}
