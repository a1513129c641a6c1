package catalog

import (
	"errors"
	"fmt"
	"math"
)

// MaxStoredValue bounds cost and time-to-live to what a signed 64-bit
// column holds.
const MaxStoredValue = math.MaxInt64

var (
	ErrVariantNotFound = errors.New("subscription variant does not exist")
	ErrValueOutOfRange = errors.New("variant value out of range")
)

func ErrVariantNotFoundByID(id uint64) error {
	return fmt.Errorf("%w: id=%d", ErrVariantNotFound, id)
}

// ValidateTerms rejects a cost or time-to-live above MaxStoredValue.
func ValidateTerms(cost, timeToLive uint64) error {
	if cost > MaxStoredValue {
		return fmt.Errorf("%w: cost %d exceeds %d", ErrValueOutOfRange, cost, uint64(MaxStoredValue))
	}
	if timeToLive > MaxStoredValue {
		return fmt.Errorf("%w: ttl %d exceeds %d", ErrValueOutOfRange, timeToLive, uint64(MaxStoredValue))
	}
	return nil
}
