package subscription

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAlreadyActive      = errors.New("already have an active subscription")
	ErrNotSubscribed      = errors.New("not a subscriber")
	ErrVariantUnavailable = errors.New("subscription variant unavailable")
	ErrInvalidTimeToLive  = errors.New("subscription variant has zero time to live")
)

func ErrActiveUntil(expiresAt time.Time) error {
	return fmt.Errorf("%w: expires at %s", ErrAlreadyActive, expiresAt.UTC().Format(time.RFC3339))
}

func ErrExpiredAt(expiresAt time.Time) error {
	return fmt.Errorf("%w: subscription expired at %s", ErrNotSubscribed, expiresAt.UTC().Format(time.RFC3339))
}
