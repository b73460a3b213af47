package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testEmployees() []employee.Employee {
	return []employee.Employee{
		{ID: "e-ana", EmployeeCode: "EMP008", FullName: "Ana Putri", FirstName: "Ana", LastName: "Putri", Username: "anap", Email: "ana@example.com", IsActive: true},
		{ID: "e-budi", EmployeeCode: "EMP015", FullName: "Budi Santoso", FirstName: "Budi", LastName: "Santoso", Username: "budis", Email: "budi@example.com", NationalID: strPtr("123456789012"), IsActive: true},
		{ID: "e-old", EmployeeCode: "EMP099", FullName: "Citra Lestari", FirstName: "Citra", LastName: "Lestari", Username: "citra", Email: "citra@example.com", IsActive: false},
	}
}

func jan(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}

func resolve(t *testing.T, rows ...[]string) ([]Bucket, SheetResult) {
	t.Helper()
	acc := NewAccumulator()
	res, err := NewResolver(NewDirectory(testEmployees()), acc).ResolveSheet(context.Background(), sheet.Sheet{Name: "Sheet1", Rows: rows})
	require.NoError(t, err)
	return acc.Buckets(), res
}

func ev(h, m int, d punch.Direction) punch.Event {
	return punch.Event{Time: punch.MustClock(h, m), Direction: d}
}

func TestDirectory_Match(t *testing.T) {
	dir := NewDirectory(testEmployees())

	tests := []struct {
		name string
		row  []string
		want string
		ok   bool
	}{
		{"full name", []string{"Ana Putri"}, "e-ana", true},
		{"prefixed name", []string{"Employee: Budi Santoso"}, "e-budi", true},
		{"title prefix", []string{"Mr. Budi Santoso"}, "e-budi", true},
		{"word inside cell", []string{"Budi (Warehouse)"}, "e-budi", true},
		{"employee code", []string{"EMP008"}, "e-ana", true},
		{"code without prefix", []string{"ID: 015"}, "e-budi", true},
		{"leading zeros stripped", []string{"No 8"}, "e-ana", true},
		{"numeric id", []string{"x", "15"}, "e-budi", true},
		{"national id", []string{"123456789012"}, "e-budi", true},
		{"name beats earlier id", []string{"EMP008", "Budi Santoso"}, "e-budi", true},
		{"inactive employee ignored", []string{"Citra Lestari"}, "", false},
		{"short cells ignored", []string{"A", "8"}, "", false},
		{"nothing", []string{"Daily Attendance Report"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := dir.Match(tt.row)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id.EmployeeID)
		})
	}
}

func TestDirectory_AmbiguousKeysDropped(t *testing.T) {
	dir := NewDirectory([]employee.Employee{
		{ID: "1", FullName: "Ana Putri", FirstName: "Ana", IsActive: true, EmployeeCode: "A1"},
		{ID: "2", FullName: "Ana Wijaya", FirstName: "Ana", IsActive: true, EmployeeCode: "A2"},
	})

	_, ok := dir.Match([]string{"Ana"})
	assert.False(t, ok)

	id, ok := dir.Match([]string{"Ana Wijaya"})
	assert.True(t, ok)
	assert.Equal(t, "2", id.EmployeeID)
}

func TestDirectory_ByEmail(t *testing.T) {
	dir := NewDirectory(testEmployees())

	id, ok := dir.ByEmail(" ANA@example.com ")
	assert.True(t, ok)
	assert.Equal(t, "e-ana", id.EmployeeID)

	_, ok = dir.ByEmail("citra@example.com")
	assert.False(t, ok)
}

func TestResolver_HeaderBlockWithPunchColumn(t *testing.T) {
	buckets, res := resolve(t,
		[]string{"Monthly Status Report"},
		[]string{"Employee: Ana Putri", "", "Code: EMP008"},
		[]string{"Date", "Status", "Punch Records"},
		[]string{"06-01-2025", "Present", "09:00:in(TAS-IN), 12:30:out(TAS-OUT), 13:10:in, 17:45:out"},
		[]string{"07-01-2025", "Absent", ""},
		[]string{"Total Duration", "", "16:05"},
	)

	require.Len(t, buckets, 2)
	assert.Equal(t, "e-ana", buckets[0].Employee.EmployeeID)
	assert.Equal(t, jan(6), buckets[0].Date)
	assert.Equal(t, "Present", buckets[0].Status)
	assert.Equal(t, []punch.Event{ev(9, 0, punch.In), ev(12, 30, punch.Out), ev(13, 10, punch.In), ev(17, 45, punch.Out)}, buckets[0].Punches)

	assert.Equal(t, jan(7), buckets[1].Date)
	assert.Equal(t, "Absent", buckets[1].Status)
	assert.Empty(t, buckets[1].Punches)

	assert.Equal(t, 0, res.Unmatched)
}

func TestResolver_SplitInOutColumns(t *testing.T) {
	buckets, _ := resolve(t,
		[]string{"Emp Code", "Name", "Date", "In Time", "Out Time", "Status"},
		[]string{"EMP008", "Ana Putri", "2025-01-06", "09:15", "17:48", "P"},
		[]string{"EMP015", "Budi Santoso", "2025-01-06", "08:55", "17:10", ""},
	)

	require.Len(t, buckets, 2)
	byID := map[string]Bucket{}
	for _, b := range buckets {
		byID[b.Employee.EmployeeID] = b
	}
	assert.Equal(t, []punch.Event{ev(9, 15, punch.In), ev(17, 48, punch.Out)}, byID["e-ana"].Punches)
	assert.Equal(t, "P", byID["e-ana"].Status)
	assert.Equal(t, []punch.Event{ev(8, 55, punch.In), ev(17, 10, punch.Out)}, byID["e-budi"].Punches)
}

func TestResolver_BottomUpIdentity(t *testing.T) {
	buckets, res := resolve(t,
		[]string{"Date", "In", "Out"},
		[]string{"06-01-2025", "09:00", "17:00"},
		[]string{"07-01-2025", "09:05", "17:20"},
		[]string{"Name: Budi Santoso"},
	)

	require.Len(t, buckets, 2)
	for _, b := range buckets {
		assert.Equal(t, "e-budi", b.Employee.EmployeeID)
	}
	assert.Equal(t, jan(6), buckets[0].Date)
	assert.Equal(t, jan(7), buckets[1].Date)
	assert.Equal(t, 0, res.Unmatched)
}

func TestResolver_TotalsResetCurrentEmployee(t *testing.T) {
	buckets, res := resolve(t,
		[]string{"Employee: Ana Putri"},
		[]string{"Date", "Punch"},
		[]string{"06-01-2025", "09:00 in 17:00 out"},
		[]string{"PresentDays", "1"},
		[]string{"07-01-2025", "09:00 in 17:00 out"},
	)

	require.Len(t, buckets, 1)
	assert.Equal(t, jan(6), buckets[0].Date)
	assert.Equal(t, 1, res.Unmatched, "row after totals has no employee")
}

func TestResolver_RepeatedIdentityMergesDays(t *testing.T) {
	buckets, _ := resolve(t,
		[]string{"Name", "Date", "Punch", "Status"},
		[]string{"Ana Putri", "06-01-2025", "09:00 in", ""},
		[]string{"Ana Putri", "06-01-2025", "17:30 out", "Present"},
		[]string{"Ana Putri", "06-01-2025", "17:30 out", "late"},
	)

	require.Len(t, buckets, 1)
	assert.Equal(t, []punch.Event{ev(9, 0, punch.In), ev(17, 30, punch.Out)}, buckets[0].Punches)
	assert.Equal(t, "Present", buckets[0].Status, "weak status does not replace a strong one")
}

func TestResolver_DateContextCarriesOver(t *testing.T) {
	buckets, _ := resolve(t,
		[]string{"06-01-2025"},
		[]string{"Ana Putri", "09:00 in", "17:00 out"},
		[]string{"Budi Santoso", "10:00 in", "18:00 out"},
	)

	require.Len(t, buckets, 2)
	for _, b := range buckets {
		assert.Equal(t, jan(6), b.Date)
	}
}

func TestResolver_ResolveAllMergesSheets(t *testing.T) {
	acc := NewAccumulator()
	r := NewResolver(NewDirectory(testEmployees()), acc)

	results, err := r.ResolveAll(context.Background(), []sheet.Sheet{
		{Name: "Morning", Rows: [][]string{{"Ana Putri", "2025-01-06", "09:00 in"}}},
		{Name: "Evening", Rows: [][]string{{"Ana Putri", "2025-01-06", "17:00 out"}}},
		{Name: "Noise", Rows: [][]string{{"2025-01-06", "08:00 in"}}},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 1, results[2].Unmatched)

	buckets := acc.Buckets()
	require.Len(t, buckets, 1)
	assert.Equal(t, []punch.Event{ev(9, 0, punch.In), ev(17, 0, punch.Out)}, buckets[0].Punches)
}
