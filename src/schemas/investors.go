package schemas

type CreateInvestorRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type InvestorResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	CreatedAt string `json:"createdAt"`
}
