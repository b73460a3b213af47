package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/calendar"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingEmployeeID):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrForbidden):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeCodeExists),
		errors.Is(err, employee.ErrEmailExists),
		errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceLocked):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrUnsupportedFileType),
		errors.Is(err, attendance.ErrUnreadableFile),
		errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrEmployeeNotEligible):
		ValidationError(w, map[string]string{"employee_id": err.Error()})

	// Calendar
	case errors.Is(err, calendar.ErrHolidayNotFound):
		NotFound(w, "Public holiday not found")
	case errors.Is(err, calendar.ErrHolidayExists):
		Conflict(w, err.Error())
	case errors.Is(err, calendar.ErrInvalidMonth):
		ValidationError(w, map[string]string{"month": err.Error()})

	// Payroll domain errors
	case errors.Is(err, payroll.ErrBatchNotFound):
		NotFound(w, "Payroll batch not found")
	case errors.Is(err, payroll.ErrEntryNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrDeductionLineNotFound):
		NotFound(w, "Deduction line not found")
	case errors.Is(err, payroll.ErrComponentNotFound):
		NotFound(w, "Deduction component not found")
	case errors.Is(err, payroll.ErrEmployeeDeductionNotFound):
		NotFound(w, "Employee deduction not found")
	case errors.Is(err, payroll.ErrBatchAlreadyExists),
		errors.Is(err, payroll.ErrBatchNotDraft),
		errors.Is(err, payroll.ErrBatchNotVoidable),
		errors.Is(err, payroll.ErrBatchNotDeletable),
		errors.Is(err, payroll.ErrBatchVoid),
		errors.Is(err, payroll.ErrComponentNameExists):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrStatutoryNotWaivable):
		Forbidden(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidMonth):
		ValidationError(w, map[string]string{"month": err.Error()})

	// Storage
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
