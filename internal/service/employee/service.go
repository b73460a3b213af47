package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/secret"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	box          *secret.Box
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, box *secret.Box) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		box:          box,
	}
}

// Helper function to extract the caller's employee id and role from the JWT context.
// A missing token yields empty values, which callers treat as a system caller.
func getClaimsFromContext(ctx context.Context) (employeeID, role string) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil || claims == nil {
		return "", ""
	}
	employeeID, _ = claims["employee_id"].(string)
	role, _ = claims["role"].(string)
	return employeeID, role
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	// Employees can only view their own record
	requesterID, role := getClaimsFromContext(ctx)
	if employee.Role(role) == employee.RoleEmployee && requesterID != id {
		return employee.EmployeeResponse{}, employee.ErrForbidden
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return s.mapEmployeeToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	results := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		results = append(results, s.mapEmployeeToResponse(emp))
	}
	return results, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var doj *time.Time
	if req.DateOfJoining != nil && *req.DateOfJoining != "" {
		parsed, _ := time.Parse("2006-01-02", *req.DateOfJoining)
		doj = &parsed
	}

	sealed, err := s.box.Seal(req.BankAccountNumber)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to seal bank account: %w", err)
	}

	role := employee.RoleEmployee
	if req.Role != "" {
		role = employee.Role(req.Role)
	}

	fullName := strings.Join(strings.Fields(req.FullName), " ")
	first, last := splitName(fullName)

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeCode:      strings.TrimSpace(req.EmployeeCode),
		FullName:          fullName,
		FirstName:         first,
		LastName:          last,
		Username:          strings.TrimSpace(req.Username),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		NationalID:        req.NationalID,
		DateOfJoining:     doj,
		BasicSalary:       req.BasicSalary,
		Allowance:         req.Allowance,
		BankAccountNumber: sealed,
		IFSCCode:          strings.ToUpper(req.IFSCCode),
		Role:              role,
		IsActive:          true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "employee_code", created.EmployeeCode)
	return s.mapEmployeeToResponse(created), nil
}

// UpdateBankDetails implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateBankDetails(ctx context.Context, req employee.UpdateBankDetailsRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	sealed, err := s.box.Seal(req.BankAccountNumber)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to seal bank account: %w", err)
	}
	if err := s.employeeRepo.UpdateBankDetails(ctx, req.ID, sealed, strings.ToUpper(req.IFSCCode)); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee bank details updated", "employee_id", req.ID)
	return s.mapEmployeeToResponse(updated), nil
}

// GratuityReport implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GratuityReport(ctx context.Context, asOf time.Time) (employee.GratuityReportResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return employee.GratuityReportResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	report := employee.GratuityReportResponse{
		AsOf:           asOf.Format("2006-01-02"),
		Rows:           make([]employee.GratuityRow, 0, len(employees)),
		TotalLiability: decimal.Zero,
	}
	for _, emp := range employees {
		if !emp.PayrollEligible() {
			continue
		}
		if emp.DateOfJoining == nil {
			report.Excluded = append(report.Excluded, emp.FullName)
			continue
		}

		years, amount := CalculateGratuity(*emp.DateOfJoining, emp.BasicSalary, asOf)
		report.Rows = append(report.Rows, employee.GratuityRow{
			EmployeeID:    emp.ID,
			EmployeeCode:  emp.EmployeeCode,
			FullName:      emp.FullName,
			DateOfJoining: emp.DateOfJoining.Format("2006-01-02"),
			ServiceYears:  years.Round(2),
			DailyBasic:    emp.BasicSalary.Div(gratuityDivisor).Round(2),
			Amount:        amount,
		})
		report.TotalLiability = report.TotalLiability.Add(amount)
	}

	return report, nil
}

// mapEmployeeToResponse never exposes the full account number.
func (s *EmployeeServiceImpl) mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var dojStr *string
	if emp.DateOfJoining != nil {
		d := emp.DateOfJoining.Format("2006-01-02")
		dojStr = &d
	}

	masked := ""
	if account, err := s.box.Open(emp.BankAccountNumber); err == nil {
		masked = secret.Mask(account)
	} else {
		slog.Warn("Failed to open bank account", "employee_id", emp.ID, "error", err)
	}

	return employee.EmployeeResponse{
		ID:                emp.ID,
		EmployeeCode:      emp.EmployeeCode,
		FullName:          emp.FullName,
		Username:          emp.Username,
		Email:             emp.Email,
		DateOfJoining:     dojStr,
		BasicSalary:       emp.BasicSalary,
		Allowance:         emp.Allowance,
		BankAccountMasked: masked,
		IFSCCode:          emp.IFSCCode,
		Role:              string(emp.Role),
		IsActive:          emp.IsActive,
	}
}

func splitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], parts[len(parts)-1]
}
