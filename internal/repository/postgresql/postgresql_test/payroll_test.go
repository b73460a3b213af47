package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollRepository_BatchLifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(setup.DB)
	emp := createTestEmployee(t, setup.DB, "EMP010")
	month := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	batch, err := repo.CreateBatch(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, payroll.BatchStatusDraft, batch.Status)

	_, err = repo.CreateBatch(ctx, month)
	assert.ErrorIs(t, err, payroll.ErrBatchAlreadyExists)

	pf, err := repo.GetOrCreateComponent(ctx, payroll.DeductionComponent{Name: "Provident Fund", IsStatutory: true, IsRecurring: true})
	require.NoError(t, err)
	same, err := repo.GetOrCreateComponent(ctx, payroll.DeductionComponent{Name: "Provident Fund"})
	require.NoError(t, err)
	assert.Equal(t, pf.ID, same.ID)
	assert.True(t, same.IsStatutory)

	lop, err := repo.GetOrCreateComponent(ctx, payroll.DeductionComponent{Name: payroll.LOPComponentName, IsRecurring: true})
	require.NoError(t, err)

	entry, err := repo.CreateEntry(ctx, payroll.Entry{
		BatchID:            batch.ID,
		EmployeeID:         emp.ID,
		EmployeeName:       emp.FullName,
		BasicSalary:        decimal.NewFromInt(24000),
		Allowances:         decimal.NewFromInt(6000),
		WorkingDays:        26,
		RequiredWorkHours:  decimal.NewFromInt(208),
		ActualWorkHours:    decimal.NewFromInt(200),
		ShortfallWorkHours: decimal.NewFromInt(8),
		HourlyRate:         decimal.NewFromInt(125),
		LOPDeduction:       decimal.NewFromInt(1000),
		ApprovedOTHours:    decimal.Zero,
		OTPay:              decimal.Zero,
		BasePay:            decimal.NewFromInt(30000),
		GrossSalary:        decimal.NewFromInt(30000),
		Deductions:         decimal.NewFromInt(3880),
		NetSalary:          decimal.NewFromInt(26120),
		Lines: []payroll.DeductionLine{
			{ComponentID: pf.ID, ComponentName: pf.Name, IsStatutory: true, Amount: decimal.NewFromInt(2880), ApprovedAmount: decimal.NewFromInt(2880)},
			{ComponentID: lop.ID, ComponentName: lop.Name, Amount: decimal.NewFromInt(1000), ApprovedAmount: decimal.NewFromInt(1000)},
		},
	})
	require.NoError(t, err)
	require.Len(t, entry.Lines, 2)

	got, err := repo.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.EntryCount)
	assert.True(t, decimal.NewFromInt(26120).Equal(got.TotalNet))

	entries, err := repo.ListEntries(ctx, batch.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Lines, 2)
	assert.Equal(t, "Provident Fund", entries[0].Lines[0].ComponentName)
	assert.Equal(t, payroll.LOPComponentName, entries[0].Lines[1].ComponentName)

	line := entries[0].Lines[1]
	require.NoError(t, line.Waive(true))
	require.NoError(t, repo.UpdateDeductionLine(ctx, line))
	reloaded, err := repo.GetDeductionLine(ctx, line.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsWaived)
	assert.True(t, reloaded.ApprovedAmount.IsZero())

	payslips, err := repo.ListPayslips(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, payslips, "draft entries are not payslips")

	require.NoError(t, repo.UpdateBatchStatus(ctx, batch.ID, payroll.BatchStatusFinalized))
	finalized, err := repo.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.NotNil(t, finalized.FinalizedAt)

	payslips, err = repo.ListPayslips(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, payslips, 1)
	assert.True(t, month.Equal(payslips[0].Month))
	assert.Equal(t, entry.ID, payslips[0].Entry.ID)
	assert.True(t, decimal.NewFromInt(26120).Equal(payslips[0].Entry.NetSalary))
	assert.Len(t, payslips[0].Entry.Lines, 2)

	require.NoError(t, repo.UpdateBatchStatus(ctx, batch.ID, payroll.BatchStatusVoid))
	active, err := repo.GetActiveBatchByMonth(ctx, month)
	require.NoError(t, err)
	assert.Nil(t, active)

	_, err = repo.CreateBatch(ctx, month)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBatch(ctx, batch.ID))
	_, err = repo.GetEntry(ctx, entry.ID)
	assert.ErrorIs(t, err, payroll.ErrEntryNotFound)
	_, err = repo.GetBatch(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, payroll.ErrBatchNotFound)
}

func TestPayrollRepository_EmployeeDeductions(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRepository(setup.DB)
	emp := createTestEmployee(t, setup.DB, "EMP011")

	welfare, err := repo.CreateComponent(ctx, payroll.DeductionComponent{Name: "Welfare Fund", IsRecurring: true})
	require.NoError(t, err)
	_, err = repo.CreateComponent(ctx, payroll.DeductionComponent{Name: "Welfare Fund"})
	assert.ErrorIs(t, err, payroll.ErrComponentNameExists)

	d, err := repo.AssignDeduction(ctx, payroll.EmployeeDeduction{
		EmployeeID: emp.ID, ComponentID: welfare.ID, Amount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	assert.Equal(t, "Welfare Fund", d.ComponentName)
	assert.True(t, d.IsActive)

	require.NoError(t, repo.DeactivateDeduction(ctx, d.ID))

	active, err := repo.ListEmployeeDeductions(ctx, emp.ID, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.ListEmployeeDeductions(ctx, emp.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)
}
