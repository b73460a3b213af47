package calendar

import (
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type SettingsResponse struct {
	WorkMonday            bool `json:"work_monday"`
	WorkTuesday           bool `json:"work_tuesday"`
	WorkWednesday         bool `json:"work_wednesday"`
	WorkThursday          bool `json:"work_thursday"`
	WorkFriday            bool `json:"work_friday"`
	WorkSaturday          bool `json:"work_saturday"`
	WorkSunday            bool `json:"work_sunday"`
	SecondSaturdayHoliday bool `json:"second_saturday_holiday"`
}

type UpdateSettingsRequest struct {
	WorkMonday            *bool `json:"work_monday,omitempty"`
	WorkTuesday           *bool `json:"work_tuesday,omitempty"`
	WorkWednesday         *bool `json:"work_wednesday,omitempty"`
	WorkThursday          *bool `json:"work_thursday,omitempty"`
	WorkFriday            *bool `json:"work_friday,omitempty"`
	WorkSaturday          *bool `json:"work_saturday,omitempty"`
	WorkSunday            *bool `json:"work_sunday,omitempty"`
	SecondSaturdayHoliday *bool `json:"second_saturday_holiday,omitempty"`
}

type CreateHolidayRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	IsRecurring bool   `json:"is_recurring"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	IsRecurring bool   `json:"is_recurring"`
}

type DayView struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	IsHoliday bool   `json:"is_holiday"`
	Reason    string `json:"reason,omitempty"`
}

type MonthViewResponse struct {
	Month       string    `json:"month"`
	WorkingDays int       `json:"working_days"`
	Days        []DayView `json:"days"`
}
