package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const gratuityMinYears = 4.8

var (
	daysPerYear      = decimal.RequireFromString("365.25")
	gratuityDivisor  = decimal.NewFromInt(26)
	gratuityDaysEarn = decimal.NewFromInt(15)
	gratuityMinimum  = decimal.NewFromFloat(gratuityMinYears)
)

// CalculateGratuity returns completed service years and the accrued liability as of asOf.
// Both the joining day and asOf count as served. Below 4.8 years nothing is owed;
// otherwise the liability is 15 days of basic/26 per year of service.
func CalculateGratuity(dateOfJoining time.Time, basic decimal.Decimal, asOf time.Time) (years, amount decimal.Decimal) {
	doj := truncateDay(dateOfJoining)
	today := truncateDay(asOf)
	if today.Before(doj) {
		return decimal.Zero, decimal.Zero
	}

	days := int64(today.Sub(doj).Hours()/24) + 1
	years = decimal.NewFromInt(days).Div(daysPerYear)
	if years.LessThan(gratuityMinimum) {
		return years, decimal.Zero
	}

	amount = basic.Div(gratuityDivisor).Mul(gratuityDaysEarn).Mul(years).Round(2)
	return years, amount
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
