package payroll

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/calendar"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakePayrollRepo keeps batches, entries and the deduction catalog in memory.
type fakePayrollRepo struct {
	mu         sync.Mutex
	seq        int
	batches    map[string]*payroll.Batch
	entries    map[string]*payroll.Entry
	components map[string]*payroll.DeductionComponent
	deductions map[string]*payroll.EmployeeDeduction
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		batches:    map[string]*payroll.Batch{},
		entries:    map[string]*payroll.Entry{},
		components: map[string]*payroll.DeductionComponent{},
		deductions: map[string]*payroll.EmployeeDeduction{},
	}
}

func (r *fakePayrollRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s-%d", prefix, r.seq)
}

func (r *fakePayrollRepo) CreateBatch(ctx context.Context, month time.Time) (payroll.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.batches {
		if b.Month.Equal(month) && b.Status != payroll.BatchStatusVoid {
			return payroll.Batch{}, payroll.ErrBatchAlreadyExists
		}
	}
	b := payroll.Batch{ID: r.nextID("batch"), Month: month, Status: payroll.BatchStatusDraft, CreatedAt: time.Now()}
	r.batches[b.ID] = &b
	return b, nil
}

func (r *fakePayrollRepo) GetBatch(ctx context.Context, id string) (payroll.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return payroll.Batch{}, payroll.ErrBatchNotFound
	}
	out := *b
	out.EntryCount, out.TotalNet = 0, decimal.Zero
	for _, e := range r.entries {
		if e.BatchID == id {
			out.EntryCount++
			out.TotalNet = out.TotalNet.Add(e.NetSalary)
		}
	}
	return out, nil
}

func (r *fakePayrollRepo) GetBatchForUpdate(ctx context.Context, id string) (payroll.Batch, error) {
	return r.GetBatch(ctx, id)
}

func (r *fakePayrollRepo) GetActiveBatchByMonth(ctx context.Context, month time.Time) (*payroll.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.batches {
		if b.Month.Equal(month) && b.Status != payroll.BatchStatusVoid {
			out := *b
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakePayrollRepo) ListBatches(ctx context.Context, filter payroll.BatchFilter) ([]payroll.Batch, int64, error) {
	r.mu.Lock()
	var ids []string
	for id, b := range r.batches {
		if filter.Status != nil && string(b.Status) != *filter.Status {
			continue
		}
		ids = append(ids, id)
	}
	r.mu.Unlock()

	sort.Strings(ids)
	out := make([]payroll.Batch, 0, len(ids))
	for _, id := range ids {
		b, _ := r.GetBatch(ctx, id)
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (r *fakePayrollRepo) UpdateBatchStatus(ctx context.Context, id string, status payroll.BatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return payroll.ErrBatchNotFound
	}
	b.Status = status
	if status == payroll.BatchStatusFinalized {
		now := time.Now()
		b.FinalizedAt = &now
	}
	return nil
}

func (r *fakePayrollRepo) SetExportPath(ctx context.Context, id string, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return payroll.ErrBatchNotFound
	}
	b.ExportPath = &path
	return nil
}

func (r *fakePayrollRepo) DeleteBatch(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[id]; !ok {
		return payroll.ErrBatchNotFound
	}
	delete(r.batches, id)
	for eid, e := range r.entries {
		if e.BatchID == id {
			delete(r.entries, eid)
		}
	}
	return nil
}

func (r *fakePayrollRepo) DeleteEntries(ctx context.Context, batchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		if e.BatchID == batchID {
			delete(r.entries, id)
		}
	}
	return nil
}

func (r *fakePayrollRepo) CreateEntry(ctx context.Context, entry payroll.Entry) (payroll.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID("entry")
	lines := make([]payroll.DeductionLine, len(entry.Lines))
	for i, l := range entry.Lines {
		l.ID = r.nextID("line")
		l.EntryID = entry.ID
		lines[i] = l
	}
	entry.Lines = lines
	c := entry
	r.entries[entry.ID] = &c
	return entry, nil
}

func (r *fakePayrollRepo) GetEntry(ctx context.Context, id string) (payroll.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return payroll.Entry{}, payroll.ErrEntryNotFound
	}
	out := *e
	out.Lines = append([]payroll.DeductionLine(nil), e.Lines...)
	return out, nil
}

func (r *fakePayrollRepo) ListEntries(ctx context.Context, batchID string) ([]payroll.Entry, error) {
	r.mu.Lock()
	var ids []string
	for id, e := range r.entries {
		if e.BatchID == batchID {
			ids = append(ids, id)
		}
	}
	r.mu.Unlock()

	out := make([]payroll.Entry, 0, len(ids))
	for _, id := range ids {
		e, _ := r.GetEntry(ctx, id)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeName < out[j].EmployeeName })
	return out, nil
}

func (r *fakePayrollRepo) ListPayslips(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	r.mu.Lock()
	var payslips []payroll.Payslip
	for _, e := range r.entries {
		b, ok := r.batches[e.BatchID]
		if ok && e.EmployeeID == employeeID && b.Status == payroll.BatchStatusFinalized {
			payslips = append(payslips, payroll.Payslip{Month: b.Month, Entry: payroll.Entry{ID: e.ID}})
		}
	}
	r.mu.Unlock()

	for i := range payslips {
		payslips[i].Entry, _ = r.GetEntry(ctx, payslips[i].Entry.ID)
	}
	sort.Slice(payslips, func(i, j int) bool { return payslips[i].Month.After(payslips[j].Month) })
	return payslips, nil
}

func (r *fakePayrollRepo) UpdateEntryTotals(ctx context.Context, entry payroll.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entry.ID]
	if !ok {
		return payroll.ErrEntryNotFound
	}
	e.Deductions, e.NetSalary = entry.Deductions, entry.NetSalary
	return nil
}

func (r *fakePayrollRepo) GetDeductionLine(ctx context.Context, id string) (payroll.DeductionLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		for _, l := range e.Lines {
			if l.ID == id {
				return l, nil
			}
		}
	}
	return payroll.DeductionLine{}, payroll.ErrDeductionLineNotFound
}

func (r *fakePayrollRepo) UpdateDeductionLine(ctx context.Context, line payroll.DeductionLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[line.EntryID]
	if !ok {
		return payroll.ErrDeductionLineNotFound
	}
	for i := range e.Lines {
		if e.Lines[i].ID == line.ID {
			e.Lines[i] = line
			return nil
		}
	}
	return payroll.ErrDeductionLineNotFound
}

func (r *fakePayrollRepo) CreateComponent(ctx context.Context, component payroll.DeductionComponent) (payroll.DeductionComponent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.components {
		if c.Name == component.Name {
			return payroll.DeductionComponent{}, payroll.ErrComponentNameExists
		}
	}
	component.ID = uuid.NewString()
	c := component
	r.components[c.ID] = &c
	return component, nil
}

func (r *fakePayrollRepo) GetComponentByID(ctx context.Context, id string) (payroll.DeductionComponent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.components[id]
	if !ok {
		return payroll.DeductionComponent{}, payroll.ErrComponentNotFound
	}
	return *c, nil
}

func (r *fakePayrollRepo) GetOrCreateComponent(ctx context.Context, component payroll.DeductionComponent) (payroll.DeductionComponent, error) {
	r.mu.Lock()
	for _, c := range r.components {
		if c.Name == component.Name {
			r.mu.Unlock()
			return *c, nil
		}
	}
	r.mu.Unlock()
	return r.CreateComponent(ctx, component)
}

func (r *fakePayrollRepo) ListComponents(ctx context.Context) ([]payroll.DeductionComponent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]payroll.DeductionComponent, 0, len(r.components))
	for _, c := range r.components {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakePayrollRepo) AssignDeduction(ctx context.Context, d payroll.EmployeeDeduction) (payroll.EmployeeDeduction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = r.nextID("deduction")
	c := d
	r.deductions[d.ID] = &c
	return d, nil
}

func (r *fakePayrollRepo) GetEmployeeDeduction(ctx context.Context, id string) (payroll.EmployeeDeduction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deductions[id]
	if !ok {
		return payroll.EmployeeDeduction{}, payroll.ErrEmployeeDeductionNotFound
	}
	return *d, nil
}

func (r *fakePayrollRepo) ListEmployeeDeductions(ctx context.Context, employeeID string, activeOnly bool) ([]payroll.EmployeeDeduction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payroll.EmployeeDeduction
	for _, d := range r.deductions {
		if d.EmployeeID != employeeID || activeOnly && !d.IsActive {
			continue
		}
		c := *d
		if comp, ok := r.components[d.ComponentID]; ok {
			c.ComponentName, c.IsStatutory, c.IsRecurring = comp.Name, comp.IsStatutory, comp.IsRecurring
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePayrollRepo) DeactivateDeduction(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deductions[id]
	if !ok {
		return payroll.ErrEmployeeDeductionNotFound
	}
	d.IsActive = false
	return nil
}

// fakeAttendanceRepo implements only what payroll touches; the embedded interface
// panics on anything else.
type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	mu   sync.Mutex
	days map[string]*attendance.AttendanceDay
}

func newFakeAttendanceRepo(days ...attendance.AttendanceDay) *fakeAttendanceRepo {
	r := &fakeAttendanceRepo{days: map[string]*attendance.AttendanceDay{}}
	for _, d := range days {
		c := d
		r.days[d.ID] = &c
	}
	return r
}

func (r *fakeAttendanceRepo) ListForPayroll(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.AttendanceDay
	for _, d := range r.days {
		if d.EmployeeID == employeeID && !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeAttendanceRepo) Lock(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if d, ok := r.days[id]; ok {
			d.IsLocked = true
		}
	}
	return nil
}

func (r *fakeAttendanceRepo) UnlockRange(ctx context.Context, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, d := range r.days {
		if d.IsLocked && !d.Date.Before(from) && !d.Date.After(to) {
			d.IsLocked = false
			n++
		}
	}
	return n, nil
}

func (r *fakeAttendanceRepo) lockedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.days {
		if d.IsLocked {
			n++
		}
	}
	return n
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeHolidays struct{}

func (fakeHolidays) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	return calendar.NewCalendar(calendar.DefaultSettings(), nil).IsHoliday(date), nil
}

func (fakeHolidays) ForRange(ctx context.Context, from, to time.Time) (*calendar.Calendar, error) {
	return calendar.NewCalendar(calendar.DefaultSettings(), nil), nil
}

type fakeLeave map[string]leave.Coverage

func (f fakeLeave) Coverage(ctx context.Context, employeeID string, from, to time.Time) (leave.Coverage, error) {
	return f[employeeID], nil
}
