package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/subledger/internal/domain/payment"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// MintGenesisUseCase credits the fixed genesis supply to the owner the
// first time the server starts against an empty ledger.
type MintGenesisUseCase struct {
	ledger payment.TokenLedger
	txMgr  *db.TransactionManager
	logger logger.Interface
}

func NewMintGenesisUseCase(ledger payment.TokenLedger, txMgr *db.TransactionManager, logger logger.Interface) *MintGenesisUseCase {
	return &MintGenesisUseCase{
		ledger: ledger,
		txMgr:  txMgr,
		logger: logger,
	}
}

// Execute reports whether tokens were minted. A ledger that already holds
// any supply is left untouched.
func (uc *MintGenesisUseCase) Execute(ctx context.Context, owner shared.Identity, supply uint64) (bool, error) {
	if supply == 0 {
		return false, nil
	}
	if owner.IsZero() {
		return false, fmt.Errorf("genesis supply needs an owner identity")
	}

	minted := false
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		total, err := uc.ledger.TotalSupply(txCtx)
		if err != nil {
			return err
		}
		if total > 0 {
			return nil
		}
		if err := uc.ledger.Mint(txCtx, owner, supply); err != nil {
			return err
		}
		minted = true
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to mint genesis supply", "owner", owner, "error", err)
		return false, err
	}
	if minted {
		uc.logger.Infow("genesis supply minted", "owner", owner, "supply", supply)
	}
	return minted, nil
}
