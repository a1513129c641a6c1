package usecases

import (
	"context"

	"github.com/orris-inc/subledger/internal/domain/payment"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type ApproveCommand struct {
	Owner  shared.Identity
	Amount uint64
}

type AllowanceResult struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Amount  uint64 `json:"amount"`
}

// ApproveUseCase lets an account holder set how much the subscription
// service may pull. The spender is always the configured service identity.
type ApproveUseCase struct {
	ledger payment.TokenLedger
	logger logger.Interface
}

func NewApproveUseCase(ledger payment.TokenLedger, logger logger.Interface) *ApproveUseCase {
	return &ApproveUseCase{
		ledger: ledger,
		logger: logger,
	}
}

func (uc *ApproveUseCase) Execute(ctx context.Context, cmd ApproveCommand) (*AllowanceResult, error) {
	spender := uc.ledger.Spender()
	if err := uc.ledger.Approve(ctx, cmd.Owner, spender, cmd.Amount); err != nil {
		uc.logger.Errorw("failed to approve spender", "owner", cmd.Owner, "error", err)
		return nil, err
	}

	amount, err := uc.ledger.Allowance(ctx, cmd.Owner, spender)
	if err != nil {
		return nil, err
	}
	return &AllowanceResult{
		Owner:   cmd.Owner.String(),
		Spender: spender.String(),
		Amount:  amount,
	}, nil
}
