package employee

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/secret"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	seq       int
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range r.employees {
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	r.seq++
	e.ID = fmt.Sprintf("emp-%d", r.seq)
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) UpdateBankDetails(ctx context.Context, id string, sealedAccount string, ifsc string) error {
	e, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.BankAccountNumber, e.IFSCCode = sealedAccount, ifsc
	r.employees[id] = e
	return nil
}

func (r *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for i := 1; i <= r.seq; i++ {
		if e, ok := r.employees[fmt.Sprintf("emp-%d", i)]; ok && e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestService(t *testing.T) (*EmployeeServiceImpl, *fakeEmployeeRepo) {
	t.Helper()
	box, err := secret.NewBox("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	repo := newFakeEmployeeRepo()
	return NewEmployeeService(repo, box).(*EmployeeServiceImpl), repo
}

func strPtr(s string) *string { return &s }

func TestCreateEmployee_SealsBankAccount(t *testing.T) {
	svc, repo := newTestService(t)

	resp, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeCode:      "EMP001",
		FullName:          "  Ana   Maria Putri ",
		Username:          "ana",
		Email:             "Ana@Example.com",
		DateOfJoining:     strPtr("2020-03-01"),
		BasicSalary:       decimal.NewFromInt(24000),
		Allowance:         decimal.NewFromInt(6000),
		BankAccountNumber: "123456789012",
		IFSCCode:          "hdfc0001234",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Maria Putri", resp.FullName)
	assert.Equal(t, "ana@example.com", resp.Email)
	assert.Equal(t, "XXXXXXXX9012", resp.BankAccountMasked)
	assert.Equal(t, "HDFC0001234", resp.IFSCCode)
	assert.Equal(t, "EMPLOYEE", resp.Role)
	require.NotNil(t, resp.DateOfJoining)
	assert.Equal(t, "2020-03-01", *resp.DateOfJoining)

	stored := repo.employees[resp.ID]
	assert.NotEqual(t, "123456789012", stored.BankAccountNumber)
	assert.Equal(t, "Ana", stored.FirstName)
	assert.Equal(t, "Putri", stored.LastName)

	_, err = svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeCode: "EMP001", FullName: "Other", Username: "other", Email: "other@example.com",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestCreateEmployee_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeCode:      "EMP002",
		FullName:          "Budi",
		Username:          "budi",
		Email:             "not-an-email",
		BankAccountNumber: "12-34",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "bank_account_number")
}

func TestGetEmployee_EmployeesSeeOnlyThemselves(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ana, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeCode: "E1", FullName: "Ana", Username: "ana", Email: "ana@example.com"})
	require.NoError(t, err)
	budi, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeCode: "E2", FullName: "Budi", Username: "budi", Email: "budi@example.com"})
	require.NoError(t, err)

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"employee_id": ana.ID, "role": "EMPLOYEE"})
	require.NoError(t, err)
	asAna := jwtauth.NewContext(ctx, token, nil)

	got, err := svc.GetEmployee(asAna, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FullName)

	_, err = svc.GetEmployee(asAna, budi.ID)
	assert.ErrorIs(t, err, employee.ErrForbidden)

	_, err = svc.GetEmployee(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateBankDetails(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ana, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeCode: "E1", FullName: "Ana", Username: "ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Empty(t, ana.BankAccountMasked)

	updated, err := svc.UpdateBankDetails(ctx, employee.UpdateBankDetailsRequest{ID: ana.ID, BankAccountNumber: "99887766", IFSCCode: "SBIN0004321"})
	require.NoError(t, err)
	assert.Equal(t, "XXXX7766", updated.BankAccountMasked)
	assert.Equal(t, "SBIN0004321", updated.IFSCCode)

	_, err = svc.UpdateBankDetails(ctx, employee.UpdateBankDetailsRequest{ID: "missing", BankAccountNumber: "1234", IFSCCode: "SBIN0004321"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGratuityReport(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, req := range []employee.CreateEmployeeRequest{
		{EmployeeCode: "E1", FullName: "Veteran", Username: "vet", Email: "vet@example.com", DateOfJoining: strPtr("2019-01-01"), BasicSalary: decimal.NewFromInt(26000)},
		{EmployeeCode: "E2", FullName: "Newcomer", Username: "new", Email: "new@example.com", DateOfJoining: strPtr("2024-01-01"), BasicSalary: decimal.NewFromInt(26000)},
		{EmployeeCode: "E3", FullName: "Undated", Username: "und", Email: "und@example.com", BasicSalary: decimal.NewFromInt(26000)},
		{EmployeeCode: "E4", FullName: "Chief", Username: "ceo", Email: "ceo@example.com", DateOfJoining: strPtr("2010-01-01"), BasicSalary: decimal.NewFromInt(90000), Role: "CEO"},
	} {
		_, err := svc.CreateEmployee(ctx, req)
		require.NoError(t, err)
	}
	asOf := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	report, err := svc.GratuityReport(ctx, asOf)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", report.AsOf)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, []string{"Undated"}, report.Excluded)

	veteran := report.Rows[0]
	_, want := CalculateGratuity(time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(26000), asOf)
	assert.True(t, want.Equal(veteran.Amount))
	assert.True(t, veteran.Amount.IsPositive())
	assert.True(t, decimal.NewFromInt(1000).Equal(veteran.DailyBasic))

	assert.True(t, report.Rows[1].Amount.IsZero(), "under the minimum service")
	assert.True(t, want.Equal(report.TotalLiability))
}
