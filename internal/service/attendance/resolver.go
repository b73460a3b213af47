package attendance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/punch"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/sheet"
	"golang.org/x/sync/errgroup"
)

var (
	totalsKeywords = []string{"total duration", "present days", "presentdays", "absent days", "absentdays", "summary"}
	headerKeywords = []string{"status", "punch", "check-in", "check in", "in time", "out time", "clock in", "clock out", "date", "work date"}
	dataKeywords   = []string{"PRESENT", "ABSENT", "WEEKLYOFF", "HOLIDAY"}
	strongStatuses = []string{"PRESENT", "ABSENT", "WEEKLY", "HOLIDAY", "HALF"}
)

const minValidYear = 2000

// Bucket is everything collected for one employee on one date across all sheets.
type Bucket struct {
	Employee Identity
	Date     time.Time
	Punches  []punch.Event
	Status   string
}

type bucketKey struct {
	employeeID string
	date       string
}

type bucketState struct {
	employee Identity
	date     time.Time
	punches  map[punch.Event]struct{}
	status   string
}

// Accumulator merges rows from concurrently resolved sheets.
type Accumulator struct {
	mu      sync.Mutex
	buckets map[bucketKey]*bucketState
}

func NewAccumulator() *Accumulator {
	return &Accumulator{buckets: make(map[bucketKey]*bucketState)}
}

// Add unions the punches into the (employee, date) bucket. A status containing a
// strong keyword replaces the current one; any other status only fills a blank.
func (a *Accumulator) Add(id Identity, date time.Time, events []punch.Event, status string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := bucketKey{employeeID: id.EmployeeID, date: date.Format("2006-01-02")}
	b, ok := a.buckets[key]
	if !ok {
		b = &bucketState{employee: id, date: date, punches: make(map[punch.Event]struct{})}
		a.buckets[key] = b
	}

	for _, e := range events {
		b.punches[e] = struct{}{}
	}

	status = strings.TrimSpace(status)
	if status == "" {
		return
	}
	if containsAny(strings.ToUpper(status), strongStatuses) || b.status == "" {
		b.status = status
	}
}

// Buckets returns the collected days ordered by date, then employee.
func (a *Accumulator) Buckets() []Bucket {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Bucket, 0, len(a.buckets))
	for _, b := range a.buckets {
		events := make([]punch.Event, 0, len(b.punches))
		for e := range b.punches {
			events = append(events, e)
		}
		out = append(out, Bucket{
			Employee: b.employee,
			Date:     b.date,
			Punches:  punch.SortEvents(events),
			Status:   b.status,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Employee.EmployeeID < out[j].Employee.EmployeeID
	})
	return out
}

// SheetResult counts what happened to the rows of one sheet.
type SheetResult struct {
	Sheet     string
	Rows      int
	Collected int
	// Unmatched rows looked like attendance data but no employee could be tied to them.
	Unmatched int
	// Undated rows had an employee but neither a date cell nor an earlier date to inherit.
	Undated int
}

// Resolver turns loosely structured worksheets into attendance buckets.
type Resolver struct {
	dir *Directory
	acc *Accumulator
}

func NewResolver(dir *Directory, acc *Accumulator) *Resolver {
	return &Resolver{dir: dir, acc: acc}
}

// ResolveAll resolves the sheets in parallel into the shared accumulator.
func (r *Resolver) ResolveAll(ctx context.Context, sheets []sheet.Sheet) ([]SheetResult, error) {
	results := make([]SheetResult, len(sheets))

	g, ctx := errgroup.WithContext(ctx)
	for i, s := range sheets {
		i, s := i, s
		g.Go(func() error {
			res, err := r.ResolveSheet(ctx, s)
			if err != nil {
				return fmt.Errorf("sheet %q: %w", s.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// columnMap holds column indexes found in the latest header row; -1 means absent.
type columnMap struct {
	status, punch, date, in, out int
}

func newColumnMap() columnMap {
	return columnMap{status: -1, punch: -1, date: -1, in: -1, out: -1}
}

type pendingRow struct {
	cells []string
	date  *time.Time
	cols  columnMap
}

// sheetState is the resolver state machine for one worksheet.
type sheetState struct {
	r        *Resolver
	result   SheetResult
	employee *Identity
	date     *time.Time
	cols     columnMap
	pending  []pendingRow
}

func (r *Resolver) ResolveSheet(ctx context.Context, s sheet.Sheet) (SheetResult, error) {
	st := &sheetState{r: r, result: SheetResult{Sheet: s.Name}, cols: newColumnMap()}

	for i, row := range s.Rows {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return st.result, err
			}
		}
		st.result.Rows++
		st.step(row)
	}

	st.result.Unmatched += len(st.pending)
	return st.result, nil
}

func (st *sheetState) step(row []string) {
	joined := joinCells(row)
	if joined == "" {
		return
	}
	lower := strings.ToLower(joined)

	// 1. identity
	if id, ok := st.r.dir.Match(row); ok {
		if st.employee == nil && len(st.pending) > 0 {
			for _, p := range st.pending {
				st.collect(id, p.cells, p.cols, p.date)
			}
			st.pending = nil
		}
		st.employee = &id

		if _, hasDate := rowDate(row); !hasDate && !punch.HasClockToken(joined) {
			return
		}
	}

	// 2. totals block ends the current employee
	if containsAny(lower, totalsKeywords) {
		st.employee = nil
		st.pending = nil
		return
	}

	// 3. header
	if isHeader(row, lower) {
		st.cols = mapColumns(row)
		return
	}

	// 4. data
	date, hasDate := rowDate(row)
	if hasDate {
		st.date = &date
	}
	if !hasDate && !punch.HasClockToken(joined) && !containsAny(strings.ToUpper(joined), dataKeywords) {
		return
	}

	if st.employee == nil {
		st.pending = append(st.pending, pendingRow{cells: row, date: st.date, cols: st.cols})
		return
	}
	st.collect(*st.employee, row, st.cols, st.date)
}

// collect reads date, punches and status from a data row. Punches come from the punch
// column, else from the IN/OUT columns, else from a scan of the whole row.
func (st *sheetState) collect(id Identity, row []string, cols columnMap, dateContext *time.Time) {
	var date time.Time
	if d, ok := sheet.ParseDate(cell(row, cols.date)); ok {
		date = d
	} else if dateContext != nil {
		date = *dateContext
	} else {
		st.result.Undated++
		return
	}

	var events []punch.Event
	if text := cell(row, cols.punch); text != "" {
		events = punch.ParseLog(text)
	}
	if len(events) == 0 && cols.in >= 0 && cols.out >= 0 {
		if c, ok := punch.ParseClock(cell(row, cols.in)); ok {
			events = append(events, punch.Event{Time: c, Direction: punch.In})
		}
		if c, ok := punch.ParseClock(cell(row, cols.out)); ok {
			events = append(events, punch.Event{Time: c, Direction: punch.Out})
		}
	}
	if len(events) == 0 {
		events = punch.ParseLog(joinCells(row))
	}

	st.r.acc.Add(id, date, events, cell(row, cols.status))
	st.result.Collected++
}

func isHeader(row []string, lower string) bool {
	if containsAny(lower, headerKeywords) {
		return true
	}
	var hasIn, hasOut bool
	for _, c := range row {
		switch strings.ToLower(c) {
		case "in":
			hasIn = true
		case "out":
			hasOut = true
		}
	}
	return hasIn && hasOut
}

func mapColumns(row []string) columnMap {
	cols := newColumnMap()
	for i, raw := range row {
		v := strings.ToLower(raw)
		switch {
		case strings.Contains(v, "status"):
			cols.status = i
		case strings.Contains(v, "punch") || strings.Contains(v, "logs") || strings.Contains(v, "record"):
			cols.punch = i
		case strings.Contains(v, "date") || strings.Contains(v, "work day"):
			cols.date = i
		case v == "in" || containsAny(v, []string{"check-in", "check in", "in time", "in_time", "clock in", "clock_in"}):
			cols.in = i
		case v == "out" || containsAny(v, []string{"check-out", "check out", "out time", "out_time", "clock out", "clock_out"}):
			cols.out = i
		}
	}
	return cols
}

// rowDate returns the first cell that reads as a date after minValidYear.
func rowDate(row []string) (time.Time, bool) {
	for _, c := range row {
		if d, ok := sheet.ParseDate(c); ok && d.Year() > minValidYear {
			return d, true
		}
	}
	return time.Time{}, false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func joinCells(row []string) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
