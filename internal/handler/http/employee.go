package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	UpdateBankDetails(w http.ResponseWriter, r *http.Request)
	Gratuity(w http.ResponseWriter, r *http.Request)

	AssignDeduction(w http.ResponseWriter, r *http.Request)
	ListDeductions(w http.ResponseWriter, r *http.Request)
	DeactivateDeduction(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	payrollService  payroll.PayrollService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, payrollService payroll.PayrollService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		payrollService:  payrollService,
	}
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

// UpdateBankDetails implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateBankDetails(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateBankDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.employeeService.UpdateBankDetails(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bank details updated", result)
}

// Gratuity implements EmployeeHandler. as_of defaults to today.
func (h *employeeHandlerImpl) Gratuity(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now()
	if asOfStr := r.URL.Query().Get("as_of"); asOfStr != "" {
		parsed, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			response.BadRequest(w, "as_of must be YYYY-MM-DD", nil)
			return
		}
		asOf = parsed
	}

	result, err := h.employeeService.GratuityReport(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== DEDUCTIONS ==========

// AssignDeduction implements EmployeeHandler.
func (h *employeeHandlerImpl) AssignDeduction(w http.ResponseWriter, r *http.Request) {
	var req payroll.AssignDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.payrollService.AssignDeduction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction assigned", result)
}

// ListDeductions implements EmployeeHandler.
func (h *employeeHandlerImpl) ListDeductions(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListEmployeeDeductions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeactivateDeduction implements EmployeeHandler.
func (h *employeeHandlerImpl) DeactivateDeduction(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeactivateDeduction(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deduction deactivated", nil)
}
