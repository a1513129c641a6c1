package usecases

import (
	"context"

	"github.com/orris-inc/subledger/internal/domain/payment"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type BalanceResult struct {
	Identity  string `json:"identity"`
	Balance   uint64 `json:"balance"`
	Allowance uint64 `json:"allowance"`
}

// GetBalanceUseCase reports a balance together with the allowance granted
// to the subscription service.
type GetBalanceUseCase struct {
	ledger payment.TokenLedger
	logger logger.Interface
}

func NewGetBalanceUseCase(ledger payment.TokenLedger, logger logger.Interface) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		ledger: ledger,
		logger: logger,
	}
}

func (uc *GetBalanceUseCase) Execute(ctx context.Context, identity shared.Identity) (*BalanceResult, error) {
	balance, err := uc.ledger.BalanceOf(ctx, identity)
	if err != nil {
		uc.logger.Errorw("failed to get balance", "identity", identity, "error", err)
		return nil, err
	}
	allowance, err := uc.ledger.Allowance(ctx, identity, uc.ledger.Spender())
	if err != nil {
		uc.logger.Errorw("failed to get allowance", "identity", identity, "error", err)
		return nil, err
	}
	return &BalanceResult{
		Identity:  identity.String(),
		Balance:   balance,
		Allowance: allowance,
	}, nil
}
