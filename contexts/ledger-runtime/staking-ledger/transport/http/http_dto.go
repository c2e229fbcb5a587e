package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SetBalanceRequest struct {
	Amount uint64 `json:"amount"`
}

type StakeRequest struct {
	Amount uint64 `json:"amount"`
}

type UnstakeRequest struct {
	Amount uint64 `json:"amount"`
}

type BalancesResponse struct {
	AccountID string `json:"account_id"`
	Free      uint64 `json:"free"`
	Staked    uint64 `json:"staked"`
}
