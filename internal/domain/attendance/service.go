package attendance

import (
	"context"
	"io"
	"time"
)

type AttendanceService interface {
	// Import picks the spreadsheet or simple CSV reader from the file extension.
	Import(ctx context.Context, file io.Reader, filename string) (ImportReport, error)
	ImportSpreadsheet(ctx context.Context, file io.Reader, filename string) (ImportReport, error)
	ImportCSV(ctx context.Context, file io.Reader, filename string) (ImportReport, error)

	ManualEntry(ctx context.Context, req ManualEntryRequest) (AttendanceDayResponse, error)
	ApproveOvertime(ctx context.Context, req ApproveOvertimeRequest) (AttendanceDayResponse, error)
	Recalculate(ctx context.Context, id string) (AttendanceDayResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceDayResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	// ListMyAttendance lists the days of the employee in the request token.
	ListMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// Purge deletes unlocked days in a date range.
	Purge(ctx context.Context, req PurgeRequest) (PurgeResponse, error)

	// RecalculateOpen recomputes every unlocked auto-imported day in the range.
	RecalculateOpen(ctx context.Context, from, to time.Time) (int, error)
}
