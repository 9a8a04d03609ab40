package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wagebook/wagebook-backend-go/internal/handler/http/response"
	"github.com/wagebook/wagebook-backend-go/internal/pkg/validator"
	payrollrunService "github.com/wagebook/wagebook-backend-go/internal/service/payrollrun"
)

type PayrollRunHandler interface {
	GetOverview(w http.ResponseWriter, r *http.Request)
}

type payrollRunHandlerImpl struct {
	runService *payrollrunService.RunService
}

func NewPayrollRunHandler(runService *payrollrunService.RunService) PayrollRunHandler {
	return &payrollRunHandlerImpl{runService: runService}
}

func (h *payrollRunHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	month := chi.URLParam(r, "month")
	if !validator.IsValidMonth(month) {
		response.BadRequest(w, "Month must be in YYYY-MM form", nil)
		return
	}

	overview, err := h.runService.GetOverview(r.Context(), companyID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}
