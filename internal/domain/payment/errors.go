package payment

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransferRejected  = errors.New("transfer rejected")
)

func ErrInsufficientBalance(identity string, balance, amount uint64) error {
	return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, identity, balance, amount)
}

func ErrAllowanceExceeded(owner, spender string, allowance, amount uint64) error {
	return fmt.Errorf("%w: %s allows %s %d, needs %d", ErrTransferRejected, owner, spender, allowance, amount)
}
