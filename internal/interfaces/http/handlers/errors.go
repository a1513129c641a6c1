package handlers

import (
	"errors"

	"github.com/orris-inc/subledger/internal/domain/catalog"
	"github.com/orris-inc/subledger/internal/domain/payment"
	"github.com/orris-inc/subledger/internal/domain/registration"
	"github.com/orris-inc/subledger/internal/domain/shared"
	"github.com/orris-inc/subledger/internal/domain/subscription"
	apperrors "github.com/orris-inc/subledger/internal/shared/errors"
	"github.com/orris-inc/subledger/internal/shared/guard"
)

// Stable reason codes carried in the error envelope.
const (
	ReasonAlreadyRegistered  = "AlreadyRegistered"
	ReasonNotRegistered      = "NotRegistered"
	ReasonStaleVersion       = "StaleVersion"
	ReasonVariantNotFound    = "VariantNotFound"
	ReasonValueOutOfRange    = "ValueOutOfRange"
	ReasonAlreadyActive      = "AlreadyActive"
	ReasonNotSubscribed      = "NotSubscribed"
	ReasonInsufficientFunds  = "InsufficientFunds"
	ReasonTransferRejected   = "TransferRejected"
	ReasonVariantUnavailable = "VariantUnavailable"
	ReasonInvalidTimeToLive  = "InvalidTimeToLive"
	ReasonReentrantCall      = "ReentrantCall"
	ReasonInvalidIdentity    = "InvalidIdentity"
)

// toAppError converts domain sentinels into transport errors. Errors that
// are already AppErrors, or that match no sentinel, pass through unchanged.
func toAppError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, registration.ErrAlreadyRegistered):
		appErr = apperrors.NewConflictError("Identity is already registered").WithReason(ReasonAlreadyRegistered)
	case errors.Is(err, registration.ErrStaleVersion):
		appErr = apperrors.NewConflictError("Registration changed concurrently, retry").WithReason(ReasonStaleVersion)
	case errors.Is(err, registration.ErrNotRegistered):
		appErr = apperrors.NewNotFoundError("Identity is not registered").WithReason(ReasonNotRegistered)
	case errors.Is(err, catalog.ErrVariantNotFound):
		appErr = apperrors.NewNotFoundError("Subscription variant does not exist").WithReason(ReasonVariantNotFound)
	case errors.Is(err, catalog.ErrValueOutOfRange):
		appErr = apperrors.NewValidationError("Cost and time to live must fit a signed 64-bit integer").WithReason(ReasonValueOutOfRange)
	case errors.Is(err, subscription.ErrAlreadyActive):
		appErr = apperrors.NewConflictError("Already have an active subscription").WithReason(ReasonAlreadyActive)
	case errors.Is(err, subscription.ErrNotSubscribed):
		appErr = apperrors.NewNotFoundError("Not a subscriber").WithReason(ReasonNotSubscribed)
	case errors.Is(err, subscription.ErrVariantUnavailable):
		appErr = apperrors.NewConflictError("Subscription variant is unavailable").WithReason(ReasonVariantUnavailable)
	case errors.Is(err, subscription.ErrInvalidTimeToLive):
		appErr = apperrors.NewValidationError("Time to live must be positive").WithReason(ReasonInvalidTimeToLive)
	case errors.Is(err, payment.ErrInsufficientFunds):
		appErr = apperrors.NewPaymentRequiredError("Insufficient funds").WithReason(ReasonInsufficientFunds)
	case errors.Is(err, payment.ErrTransferRejected):
		appErr = apperrors.NewPaymentRequiredError("Transfer rejected").WithReason(ReasonTransferRejected)
	case errors.Is(err, guard.ErrReentrantCall):
		appErr = apperrors.NewConflictError("Another operation for this identity is in progress").WithReason(ReasonReentrantCall)
	case errors.Is(err, shared.ErrInvalidIdentity):
		appErr = apperrors.NewValidationError("Invalid identity").WithReason(ReasonInvalidIdentity)
	default:
		return err
	}

	appErr.Details = err.Error()
	return appErr.WithCause(err)
}
