// Package payment defines the boundary between the subscription engine and
// the fungible-token ledger that settles fees.
package payment

import (
	"context"

	"github.com/orris-inc/subledger/internal/domain/shared"
)

// ValueTransferPort moves fungible units between identities. Implementations
// enforce their own authorization and must join the transaction carried by
// ctx so a failed subscription write also undoes the transfer.
type ValueTransferPort interface {
	// TransferFrom pulls amount from payer to payee on behalf of the
	// configured spender. Fails with ErrInsufficientFunds or
	// ErrTransferRejected.
	TransferFrom(ctx context.Context, payer, payee shared.Identity, amount uint64) error
	// Transfer moves amount out of from's own balance.
	Transfer(ctx context.Context, from, to shared.Identity, amount uint64) error
	BalanceOf(ctx context.Context, identity shared.Identity) (uint64, error)
}

// TokenLedger is the full token surface exposed to account holders.
type TokenLedger interface {
	ValueTransferPort
	Approve(ctx context.Context, owner, spender shared.Identity, amount uint64) error
	Allowance(ctx context.Context, owner, spender shared.Identity) (uint64, error)
	Mint(ctx context.Context, to shared.Identity, amount uint64) error
	TotalSupply(ctx context.Context) (uint64, error)
	// Spender is the identity that TransferFrom acts as.
	Spender() shared.Identity
}
