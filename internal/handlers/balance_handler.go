package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/workpay/backend/internal/middleware"
	"github.com/workpay/backend/internal/services"
)

type BalanceHandler struct {
	deposits  *services.DepositService
	validator *services.ValidationHelper
}

func NewBalanceHandler(deposits *services.DepositService) *BalanceHandler {
	return &BalanceHandler{
		deposits:  deposits,
		validator: services.NewValidationHelper(),
	}
}

// Deposit tops up the caller's balance
// @Summary Deposit funds
// @Description Add funds to the caller's balance, capped at 25% of outstanding unpaid work
// @Tags balances
// @Accept json
// @Produce json
// @Param request body object{amount=int64} true "Deposit amount in cents"
// @Success 200 {object} object{balance=int64}
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /balances/deposit [post]
func (h *BalanceHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req struct {
		Amount int64 `json:"amount" validate:"required"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	balance, err := h.deposits.Deposit(r.Context(), caller.ID, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"balance": balance,
	})
}

// DepositLimit returns the caller's current deposit cap
// @Summary Get deposit limit
// @Description Maximum amount the caller may currently deposit
// @Tags balances
// @Produce json
// @Success 200 {object} object{limit=int64}
// @Router /balances/deposit-limit [get]
func (h *BalanceHandler) DepositLimit(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	limit, err := h.deposits.MaxDeposit(r.Context(), caller.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"limit": limit,
	})
}
