// Package tokenledger is a database-backed fungible-token ledger with
// ERC20-style allowances. It implements payment.TokenLedger and joins the
// caller's transaction so fees settle atomically with subscription writes.
package tokenledger

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/subledger/internal/domain/payment"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/infrastructure/persistence/models"
	"github.com/orris-inc/subledger/internal/shared/clock"
	"github.com/orris-inc/subledger/internal/shared/db"
	"github.com/orris-inc/subledger/internal/shared/logger"
)

// Amounts are stored in signed 64-bit columns on every supported database.
const MaxAmount = math.MaxInt64

// UnlimitedAllowance is never decremented by TransferFrom.
const UnlimitedAllowance = MaxAmount

var errOverflow = errors.New("balance overflow")

type Ledger struct {
	db      *gorm.DB
	tm      *db.TransactionManager
	spender shared.Identity
	clock   clock.Clock
	logger  logger.Interface
}

var _ payment.TokenLedger = (*Ledger)(nil)

// New builds a ledger whose TransferFrom acts on behalf of spender.
func New(gdb *gorm.DB, spender shared.Identity, clk clock.Clock, log logger.Interface) *Ledger {
	return &Ledger{
		db:      gdb,
		tm:      db.NewTransactionManager(gdb),
		spender: spender,
		clock:   clk,
		logger:  log,
	}
}

func (l *Ledger) Spender() shared.Identity {
	return l.spender
}

func (l *Ledger) BalanceOf(ctx context.Context, identity shared.Identity) (uint64, error) {
	var acc models.TokenAccountModel
	err := db.GetTxFromContext(ctx, l.db).Where("identity = ?", identity.String()).Take(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return acc.Balance, nil
}

func (l *Ledger) Allowance(ctx context.Context, owner, spender shared.Identity) (uint64, error) {
	var a models.TokenAllowanceModel
	err := db.GetTxFromContext(ctx, l.db).
		Where("owner = ? AND spender = ?", owner.String(), spender.String()).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read allowance: %w", err)
	}
	return a.Amount, nil
}

// TotalSupply sums every balance; transfers conserve it, only Mint grows it.
func (l *Ledger) TotalSupply(ctx context.Context) (uint64, error) {
	var accounts []models.TokenAccountModel
	err := db.GetTxFromContext(ctx, l.db).
		Select("balance").
		Where("balance > 0").
		Find(&accounts).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read balances: %w", err)
	}

	var total uint64
	for _, acc := range accounts {
		if total > MaxAmount-acc.Balance {
			return 0, errOverflow
		}
		total += acc.Balance
	}
	return total, nil
}

// Approve sets, not adds to, the amount spender may pull from owner.
func (l *Ledger) Approve(ctx context.Context, owner, spender shared.Identity, amount uint64) error {
	if owner.IsZero() || spender.IsZero() {
		return fmt.Errorf("%w: approve requires owner and spender", payment.ErrTransferRejected)
	}
	if amount > MaxAmount {
		amount = UnlimitedAllowance
	}

	err := db.GetTxFromContext(ctx, l.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner"}, {Name: "spender"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(&models.TokenAllowanceModel{
			Owner:     owner.String(),
			Spender:   spender.String(),
			Amount:    amount,
			UpdatedAt: l.clock.Now().Unix(),
		}).Error
	if err != nil {
		l.logger.Errorw("failed to approve", "owner", owner, "spender", spender, "error", err)
		return fmt.Errorf("failed to approve: %w", err)
	}

	l.logger.Infow("allowance set", "owner", owner, "spender", spender, "amount", amount)
	return nil
}

func (l *Ledger) Mint(ctx context.Context, to shared.Identity, amount uint64) error {
	if to.IsZero() {
		return fmt.Errorf("%w: mint to empty identity", payment.ErrTransferRejected)
	}
	return l.tm.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := l.tm.GetTx(ctx)
		acc, err := l.lockAccount(tx, to)
		if err != nil {
			return err
		}
		if amount > MaxAmount || acc.Balance > MaxAmount-amount {
			return fmt.Errorf("failed to mint %d to %s: %w", amount, to, errOverflow)
		}
		if err := l.setBalance(tx, to, acc.Balance+amount); err != nil {
			return err
		}
		l.logger.Infow("tokens minted", "to", to, "amount", amount)
		return nil
	})
}

func (l *Ledger) Transfer(ctx context.Context, from, to shared.Identity, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if to.IsZero() {
		return fmt.Errorf("%w: transfer to empty identity", payment.ErrTransferRejected)
	}
	return l.tm.RunInTransaction(ctx, func(ctx context.Context) error {
		return l.move(l.tm.GetTx(ctx), from, to, amount)
	})
}

// TransferFrom pulls amount from payer using the allowance payer granted to
// the ledger's spender. Balance is checked before allowance. A zero amount
// needs neither.
func (l *Ledger) TransferFrom(ctx context.Context, payer, payee shared.Identity, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if payee.IsZero() {
		return fmt.Errorf("%w: transfer to empty identity", payment.ErrTransferRejected)
	}

	return l.tm.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := l.tm.GetTx(ctx)

		balance, err := l.BalanceOf(ctx, payer)
		if err != nil {
			return err
		}
		if balance < amount {
			return payment.ErrInsufficientBalance(payer.String(), balance, amount)
		}

		var allowance models.TokenAllowanceModel
		err = tx.Scopes(db.ForUpdate()).
			Where("owner = ? AND spender = ?", payer.String(), l.spender.String()).
			Take(&allowance).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to read allowance: %w", err)
		}
		if allowance.Amount < amount {
			return payment.ErrAllowanceExceeded(payer.String(), l.spender.String(), allowance.Amount, amount)
		}

		if allowance.Amount != UnlimitedAllowance {
			err := tx.Model(&models.TokenAllowanceModel{}).
				Where("owner = ? AND spender = ?", payer.String(), l.spender.String()).
				Updates(map[string]interface{}{
					"amount":     allowance.Amount - amount,
					"updated_at": l.clock.Now().Unix(),
				}).Error
			if err != nil {
				return fmt.Errorf("failed to spend allowance: %w", err)
			}
		}

		if err := l.move(tx, payer, payee, amount); err != nil {
			return err
		}

		l.logger.Debugw("transfer from settled",
			"payer", payer,
			"payee", payee,
			"spender", l.spender,
			"amount", amount,
		)
		return nil
	})
}

// move debits from and credits to. Rows are locked in address order so two
// opposing transfers cannot deadlock.
func (l *Ledger) move(tx *gorm.DB, from, to shared.Identity, amount uint64) error {
	first, second := from, to
	if second < first {
		first, second = second, first
	}
	accounts := make(map[shared.Identity]*models.TokenAccountModel, 2)
	for _, id := range []shared.Identity{first, second} {
		if _, ok := accounts[id]; ok {
			continue
		}
		acc, err := l.lockAccount(tx, id)
		if err != nil {
			return err
		}
		accounts[id] = acc
	}

	src, dst := accounts[from], accounts[to]
	if src.Balance < amount {
		return payment.ErrInsufficientBalance(from.String(), src.Balance, amount)
	}
	if from == to {
		return nil
	}
	if dst.Balance > MaxAmount-amount {
		return fmt.Errorf("failed to credit %s: %w", to, errOverflow)
	}

	if err := l.setBalance(tx, from, src.Balance-amount); err != nil {
		return err
	}
	return l.setBalance(tx, to, dst.Balance+amount)
}

func (l *Ledger) lockAccount(tx *gorm.DB, identity shared.Identity) (*models.TokenAccountModel, error) {
	seed := &models.TokenAccountModel{Identity: identity.String(), UpdatedAt: l.clock.Now().Unix()}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		return nil, fmt.Errorf("failed to open account %s: %w", identity, err)
	}

	var acc models.TokenAccountModel
	if err := tx.Scopes(db.ForUpdate()).Where("identity = ?", identity.String()).Take(&acc).Error; err != nil {
		return nil, fmt.Errorf("failed to lock account %s: %w", identity, err)
	}
	return &acc, nil
}

func (l *Ledger) setBalance(tx *gorm.DB, identity shared.Identity, balance uint64) error {
	err := tx.Model(&models.TokenAccountModel{}).
		Where("identity = ?", identity.String()).
		Updates(map[string]interface{}{
			"balance":    balance,
			"updated_at": l.clock.Now().Unix(),
		}).Error
	if err != nil {
		l.logger.Errorw("failed to update balance", "identity", identity, "error", err)
		return fmt.Errorf("failed to update balance: %w", err)
	}
	return nil
}
