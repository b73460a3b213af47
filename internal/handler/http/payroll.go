package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Batches
	CreateBatch(w http.ResponseWriter, r *http.Request)
	ListBatches(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	ComputeBatch(w http.ResponseWriter, r *http.Request)
	FinalizeBatch(w http.ResponseWriter, r *http.Request)
	VoidBatch(w http.ResponseWriter, r *http.Request)
	DeleteBatch(w http.ResponseWriter, r *http.Request)
	ExportBankFile(w http.ResponseWriter, r *http.Request)

	// Entries
	GetEntry(w http.ResponseWriter, r *http.Request)
	WaiveDeduction(w http.ResponseWriter, r *http.Request)
	GetMyPayslips(w http.ResponseWriter, r *http.Request)

	// Deduction catalog
	CreateComponent(w http.ResponseWriter, r *http.Request)
	ListComponents(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// ========== BATCHES ==========

// CreateBatch implements PayrollHandler.
func (h *payrollHandlerImpl) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll batch created", result)
}

// ListBatches implements PayrollHandler.
func (h *payrollHandlerImpl) ListBatches(w http.ResponseWriter, r *http.Request) {
	var filter payroll.BatchFilter

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		filter.Year = &year
	}
	filter.Page, filter.Limit = pageParams(r)

	result, err := h.payrollService.ListBatches(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// GetBatch implements PayrollHandler.
func (h *payrollHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ComputeBatch implements PayrollHandler.
func (h *payrollHandlerImpl) ComputeBatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ComputeBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll batch computed", result)
}

// FinalizeBatch implements PayrollHandler.
func (h *payrollHandlerImpl) FinalizeBatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.FinalizeBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll batch finalized", result)
}

// VoidBatch implements PayrollHandler.
func (h *payrollHandlerImpl) VoidBatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.VoidBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll batch voided", result)
}

// DeleteBatch implements PayrollHandler.
func (h *payrollHandlerImpl) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteBatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll batch deleted", nil)
}

// ExportBankFile implements PayrollHandler.
func (h *payrollHandlerImpl) ExportBankFile(w http.ResponseWriter, r *http.Request) {
	file, err := h.payrollService.ExportBankFile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.FileName, "text/csv", file.Content)
}

// ========== ENTRIES ==========

// GetEntry implements PayrollHandler.
func (h *payrollHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyPayslips implements PayrollHandler.
func (h *payrollHandlerImpl) GetMyPayslips(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListMyPayslips(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WaiveDeduction implements PayrollHandler.
func (h *payrollHandlerImpl) WaiveDeduction(w http.ResponseWriter, r *http.Request) {
	var req payroll.WaiveDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.LineID = chi.URLParam(r, "id")

	result, err := h.payrollService.WaiveDeduction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deduction updated", result)
}

// ========== DEDUCTION CATALOG ==========

// CreateComponent implements PayrollHandler.
func (h *payrollHandlerImpl) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateComponent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction component created", result)
}

// ListComponents implements PayrollHandler.
func (h *payrollHandlerImpl) ListComponents(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListComponents(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
