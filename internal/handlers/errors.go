package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/workpay/backend/internal/services"
)

// writeServiceError maps a ledger error to an HTTP response. Store
// failures become a generic 500; business rejections keep their message.
func writeServiceError(w http.ResponseWriter, err error) {
	var limitErr *services.DepositLimitError
	var storeFailure *services.StoreError

	switch {
	case errors.As(err, &storeFailure):
		log.Printf("[HTTP] store failure: %v", storeFailure)
		services.SendErrorResponse(w, "Failed to process request", http.StatusInternalServerError, nil)
	case errors.As(err, &limitErr):
		services.SendErrorResponse(w, limitErr.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrContractNotFound),
		errors.Is(err, services.ErrPayerNotFound),
		errors.Is(err, services.ErrPerformerNotFound),
		errors.Is(err, services.ErrNoResults):
		services.SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, services.ErrJobAlreadyPaid):
		services.SendErrorResponse(w, err.Error(), http.StatusConflict, nil)
	case errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidRange):
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	default:
		log.Printf("[HTTP] unexpected error: %v", err)
		services.SendErrorResponse(w, "Failed to process request", http.StatusInternalServerError, nil)
	}
}
