package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/calendar"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	seq     int
	days    map[string]*attendance.AttendanceDay
	punches map[string][]punch.Event
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{days: map[string]*attendance.AttendanceDay{}, punches: map[string][]punch.Event{}}
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.AttendanceDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.days[id]
	if !ok {
		return attendance.AttendanceDay{}, attendance.ErrAttendanceNotFound
	}
	return *d, nil
}

func (r *fakeAttendanceRepo) find(employeeID string, date time.Time) *attendance.AttendanceDay {
	for _, d := range r.days {
		if d.EmployeeID == employeeID && d.Date.Equal(date) {
			return d
		}
	}
	return nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d := r.find(employeeID, date); d != nil {
		c := *d
		return &c, nil
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) Upsert(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.find(day.EmployeeID, day.Date); existing != nil {
		if existing.IsLocked {
			return attendance.AttendanceDay{}, attendance.ErrAttendanceLocked
		}
		day.ID = existing.ID
		day.ApprovedOvertimeMinutes = existing.ApprovedOvertimeMinutes
		if day.Remarks == nil {
			day.Remarks = existing.Remarks
		}
	} else {
		r.seq++
		day.ID = fmt.Sprintf("day-%d", r.seq)
	}
	c := day
	r.days[day.ID] = &c
	return day, nil
}

func (r *fakeAttendanceRepo) SaveComputed(ctx context.Context, day attendance.AttendanceDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.days[day.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	if d.IsLocked {
		return attendance.ErrAttendanceLocked
	}
	d.Status, d.CheckIn, d.CheckOut = day.Status, day.CheckIn, day.CheckOut
	d.TotalWorkMinutes, d.IsCompliant = day.TotalWorkMinutes, day.IsCompliant
	return nil
}

func (r *fakeAttendanceRepo) ReplacePunches(ctx context.Context, dayID string, events []punch.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.punches[dayID] = append([]punch.Event(nil), events...)
	return nil
}

func (r *fakeAttendanceRepo) GetPunches(ctx context.Context, dayID string) ([]punch.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]punch.Event(nil), r.punches[dayID]...), nil
}

func (r *fakeAttendanceRepo) all() []attendance.AttendanceDay {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]attendance.AttendanceDay, 0, len(r.days))
	for _, d := range r.days {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out
}

func (r *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceDay, int64, error) {
	var out []attendance.AttendanceDay
	for _, d := range r.all() {
		if filter.EmployeeID != nil && d.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.From != nil && d.Date.Before(*filter.From) || filter.To != nil && d.Date.After(*filter.To) {
			continue
		}
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) ListForPayroll(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceDay, error) {
	var out []attendance.AttendanceDay
	for _, d := range r.all() {
		if d.EmployeeID == employeeID && !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListUnlockedAuto(ctx context.Context, from, to time.Time) ([]attendance.AttendanceDay, error) {
	var out []attendance.AttendanceDay
	for _, d := range r.all() {
		if !d.IsLocked && d.EntryType == attendance.EntryTypeAuto && !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) SetApprovedOvertime(ctx context.Context, id string, minutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.days[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	d.ApprovedOvertimeMinutes = minutes
	return nil
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

func (r *fakeAttendanceRepo) DeleteUnlocked(ctx context.Context, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, d := range r.days {
		if !d.IsLocked && !d.Date.Before(from) && !d.Date.After(to) {
			delete(r.days, id)
			delete(r.punches, id)
			n++
		}
	}
	return n, nil
}

type fakeEmployeeRepo struct {
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

func (r *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees = append(r.employees, e)
	return e, nil
}

func (r *fakeEmployeeRepo) UpdateBankDetails(ctx context.Context, id string, sealedAccount string, ifsc string) error {
	return nil
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

type fakeHolidays struct {
	holidays []calendar.PublicHoliday
}

func (h fakeHolidays) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	return calendar.NewCalendar(calendar.DefaultSettings(), h.holidays).IsHoliday(date), nil
}

func (h fakeHolidays) ForRange(ctx context.Context, from, to time.Time) (*calendar.Calendar, error) {
	return calendar.NewCalendar(calendar.DefaultSettings(), h.holidays), nil
}

type fakeFileService struct {
	uploads map[string][]byte
}

func (f *fakeFileService) UploadAttendanceImport(ctx context.Context, importID string, file io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	path := "imports/" + importID
	f.uploads[path] = data
	return path, nil
}

func (f *fakeFileService) UploadBankFile(ctx context.Context, month time.Time, batchID string, content []byte) (string, error) {
	path := "bank/" + batchID
	f.uploads[path] = content
	return path, nil
}

func (f *fakeFileService) OpenFile(ctx context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.uploads[path])), nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	delete(f.uploads, path)
	return nil
}

func (f *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "/files/" + path, nil
}

func newTestService() (*AttendanceServiceImpl, *fakeAttendanceRepo, *fakeFileService) {
	repo := newFakeAttendanceRepo()
	files := &fakeFileService{uploads: map[string][]byte{}}
	svc := NewAttendanceService(fakeTx{}, repo, &fakeEmployeeRepo{employees: testEmployees()}, fakeHolidays{}, files, Options{MaxSessionMinutes: 960})
	return svc.(*AttendanceServiceImpl), repo, files
}
