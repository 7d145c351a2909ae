package handlers

import (
	"errors"
	"net/http"

	"order_ledger/internal/domain/entities"
	"order_ledger/internal/usecase"
	"order_ledger/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

func mapOrderError(err error) *pkg.AppError {
	var missing *entities.MissingFieldError
	switch {
	case errors.As(err, &missing):
		return pkg.NewDomainError("INVALID_EVENT", missing.Error(), err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidEventField):
		return pkg.NewDomainError("INVALID_EVENT", "Invalid event payload", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidEventType):
		return pkg.NewDomainErrorSimple("INVALID_EVENT_TYPE", "Unknown order event type", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrParentRequired):
		return pkg.NewDomainErrorSimple("PURCHASE_REQUIRED", "This event requires a purchase", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPurchaseID), errors.Is(err, usecase.ErrInvalidAmount), errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPurchaseNotFound):
		return pkg.NewDomainErrorSimple("PURCHASE_NOT_FOUND", "Purchase not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "The order cannot do that in its current state", http.StatusConflict)
	case errors.Is(err, entities.ErrDuplicateTransaction):
		return pkg.NewDomainErrorSimple("DUPLICATE_TRANSACTION", "The transaction was already recorded", http.StatusConflict)
	case errors.Is(err, usecase.ErrLockTimeout):
		return pkg.NewDomainErrorSimple("TRANSACTION_BUSY", "The transaction is being processed, try again", http.StatusConflict)
	case errors.Is(err, usecase.ErrRefundUnsupported):
		return pkg.NewDomainErrorSimple("REFUND_UNSUPPORTED", "The payment gateway does not support refunds", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrIntegrity):
		return pkg.NewDomainError("INTEGRITY_VIOLATION", "The payment response was incomplete", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrGatewayComm):
		return pkg.NewDomainError("PAYMENT_GATEWAY_ERROR", "The payment gateway could not be reached", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrGatewayUnavailable), errors.Is(err, usecase.ErrNoGatewayActivated):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_UNAVAILABLE", "No payment gateway is available", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPersistence):
		return pkg.NewDomainError("ORDER_NOT_SAVED", "The order could not be saved", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
