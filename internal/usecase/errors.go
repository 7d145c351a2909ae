package usecase

import (
	"errors"

	"order_ledger/internal/domain/entities"
)

// Error taxonomy shared by the order usecases. Callers match with errors.Is.
var (
	// ErrValidation is user-correctable; checkout is shown again with the reasons.
	ErrValidation = errors.New("order validation failed")
	// ErrGatewayComm is transient; the shopper is asked to try again.
	ErrGatewayComm = errors.New("payment gateway communication failed")
	// ErrLockTimeout sends the shopper back to checkout.
	ErrLockTimeout = entities.ErrLockTimeout
	// ErrIntegrity marks malformed authorization messages. Processing halts.
	ErrIntegrity = errors.New("order integrity violation")
	// ErrPersistence means the purchase or its billing record could not be saved.
	ErrPersistence = errors.New("order could not be saved")

	ErrInvalidPurchaseID  = errors.New("invalid purchase id")
	ErrPurchaseNotFound   = errors.New("purchase not found")
	ErrInvalidEventType   = errors.New("invalid order event type")
	ErrParentRequired     = errors.New("order event requires a purchase")
	ErrRefundUnsupported  = errors.New("gateway does not support refunds")
	ErrInvalidTransition  = errors.New("order cannot do that in its current state")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrGatewayUnavailable = errors.New("payment gateway not available")
)

// gatewayFailure wraps adapter errors into the taxonomy while keeping the cause.
func gatewayFailure(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrGatewayComm, err)
}
