package httpadapter

import (
	"context"
	"log/slog"

	"agora/contexts/ledger-runtime/staking-ledger/application/commands"
	"agora/contexts/ledger-runtime/staking-ledger/application/queries"
	httptransport "agora/contexts/ledger-runtime/staking-ledger/transport/http"
)

// Handler adapts the API-process instantiation (string accounts, uint64
// balances) to the transport DTOs.
type Handler struct {
	Staking  commands.StakeUseCase[string, uint64]
	Balances queries.BalanceUseCase[string, uint64]
	Logger   *slog.Logger
}

func (h Handler) SetBalanceHandler(ctx context.Context, accountID string, req httptransport.SetBalanceRequest) (httptransport.BalancesResponse, error) {
	if err := h.Staking.SetBalance(ctx, accountID, req.Amount); err != nil {
		return httptransport.BalancesResponse{}, err
	}
	return h.BalancesHandler(ctx, accountID)
}

func (h Handler) StakeHandler(ctx context.Context, accountID string, req httptransport.StakeRequest) (httptransport.BalancesResponse, error) {
	if err := h.Staking.Stake(ctx, accountID, req.Amount); err != nil {
		return httptransport.BalancesResponse{}, err
	}
	return h.BalancesHandler(ctx, accountID)
}

func (h Handler) UnstakeHandler(ctx context.Context, accountID string, req httptransport.UnstakeRequest) (httptransport.BalancesResponse, error) {
	if err := h.Staking.Unstake(ctx, accountID, req.Amount); err != nil {
		return httptransport.BalancesResponse{}, err
	}
	return h.BalancesHandler(ctx, accountID)
}

func (h Handler) BalancesHandler(ctx context.Context, accountID string) (httptransport.BalancesResponse, error) {
	pair, err := h.Balances.Pair(ctx, accountID)
	if err != nil {
		return httptransport.BalancesResponse{}, err
	}
	return httptransport.BalancesResponse{
		AccountID: accountID,
		Free:      pair.Free,
		Staked:    pair.Staked,
	}, nil
}
