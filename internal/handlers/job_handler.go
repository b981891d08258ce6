package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/workpay/backend/internal/middleware"
	"github.com/workpay/backend/internal/services"
)

type JobHandler struct {
	contracts *services.ContractService
	payments  *services.PaymentService
}

func NewJobHandler(contracts *services.ContractService, payments *services.PaymentService) *JobHandler {
	return &JobHandler{contracts: contracts, payments: payments}
}

// ListUnpaid returns the caller's unpaid jobs
// @Summary List unpaid jobs
// @Description List unpaid jobs under the caller's active contracts
// @Tags jobs
// @Produce json
// @Success 200 {object} object{jobs=[]models.Job,count=int}
// @Router /jobs/unpaid [get]
func (h *JobHandler) ListUnpaid(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	jobs, err := h.contracts.ListUnpaidJobs(r.Context(), caller.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// Pay settles a job
// @Summary Pay for a job
// @Description Transfer the job price from the caller's balance to the performer and mark the job paid
// @Tags jobs
// @Produce json
// @Param jobID path int true "Job ID"
// @Success 200 {object} object{success=bool,job=models.Job}
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /jobs/{jobID}/pay [post]
func (h *JobHandler) Pay(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	jobID, err := strconv.ParseInt(chi.URLParam(r, "jobID"), 10, 64)
	if err != nil {
		services.SendErrorResponse(w, "Invalid job id", http.StatusBadRequest, nil)
		return
	}

	job, err := h.payments.SettleJob(r.Context(), jobID, caller.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"job":     job,
	})
}
