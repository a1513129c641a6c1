package usecases

import (
	"context"

	"github.com/orris-inc/subledger/internal/domain/payment"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

type TransferCommand struct {
	From   shared.Identity
	To     shared.Identity
	Amount uint64
}

type TransferUseCase struct {
	ledger payment.TokenLedger
	logger logger.Interface
}

func NewTransferUseCase(ledger payment.TokenLedger, logger logger.Interface) *TransferUseCase {
	return &TransferUseCase{
		ledger: ledger,
		logger: logger,
	}
}

func (uc *TransferUseCase) Execute(ctx context.Context, cmd TransferCommand) (*BalanceResult, error) {
	if err := uc.ledger.Transfer(ctx, cmd.From, cmd.To, cmd.Amount); err != nil {
		uc.logger.Warnw("transfer failed", "from", cmd.From, "to", cmd.To, "amount", cmd.Amount, "error", err)
		return nil, err
	}

	uc.logger.Infow("tokens transferred", "from", cmd.From, "to", cmd.To, "amount", cmd.Amount)
	balance, err := uc.ledger.BalanceOf(ctx, cmd.From)
	if err != nil {
		return nil, err
	}
	return &BalanceResult{Identity: cmd.From.String(), Balance: balance}, nil
}
