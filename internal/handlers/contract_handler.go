package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/workpay/backend/internal/middleware"
	"github.com/workpay/backend/internal/services"
)

type ContractHandler struct {
	contracts *services.ContractService
}

func NewContractHandler(contracts *services.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// GetContract returns one contract
// @Summary Get contract by ID
// @Description Retrieve a contract; only visible to its payer
// @Tags contracts
// @Produce json
// @Param contractID path int true "Contract ID"
// @Success 200 {object} models.Contract
// @Failure 404 {object} services.ErrorResponse
// @Router /contracts/{contractID} [get]
func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	contractID, err := strconv.ParseInt(chi.URLParam(r, "contractID"), 10, 64)
	if err != nil {
		services.SendErrorResponse(w, "Invalid contract id", http.StatusBadRequest, nil)
		return
	}

	contract, err := h.contracts.GetContract(r.Context(), contractID, caller.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contract)
}

// ListContracts returns the caller's active contracts
// @Summary List active contracts
// @Description List in_progress contracts where the caller is payer or performer
// @Tags contracts
// @Produce json
// @Success 200 {object} object{contracts=[]models.Contract,count=int}
// @Router /contracts [get]
func (h *ContractHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	contracts, err := h.contracts.ListActiveContracts(r.Context(), caller.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"contracts": contracts,
		"count":     len(contracts),
	})
}
