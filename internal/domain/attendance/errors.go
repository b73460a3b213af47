package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAttendanceLocked    = errors.New("attendance day is locked by a payroll batch")
	ErrUnsupportedFileType = errors.New("file must be .xlsx, .xls or .csv")
	ErrUnreadableFile      = errors.New("file could not be read")
	ErrEmployeeNotEligible = errors.New("employee is not active")
	ErrInvalidDateRange    = errors.New("from date must not be after to date")
)
