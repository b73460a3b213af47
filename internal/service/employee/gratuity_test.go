package employee

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateGratuity(t *testing.T) {
	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	basic := decimal.NewFromInt(26000)

	// servedFor returns the joining date giving exactly n counted days of service.
	servedFor := func(n int) time.Time {
		return asOf.AddDate(0, 0, -(n - 1))
	}

	tests := []struct {
		name       string
		doj        time.Time
		wantYears  string
		wantAmount string
	}{
		{name: "4.79 years owes nothing", doj: servedFor(1749), wantYears: "4.79", wantAmount: "0"},
		{name: "just under the minimum", doj: servedFor(1753), wantYears: "4.80", wantAmount: "0"},
		{name: "just over the minimum", doj: servedFor(1754), wantYears: "4.80", wantAmount: "72032.85"},
		{name: "4.81 years", doj: servedFor(1757), wantYears: "4.81", wantAmount: "72156.06"},
		{name: "five years", doj: servedFor(1826), wantYears: "5.00", wantAmount: "74989.73"},
		{name: "joined in the future", doj: asOf.AddDate(0, 1, 0), wantYears: "0.00", wantAmount: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			years, amount := CalculateGratuity(tt.doj, basic, asOf)
			assert.Equal(t, tt.wantYears, years.StringFixed(2))
			assert.True(t, decimal.RequireFromString(tt.wantAmount).Equal(amount), "amount %s", amount)
		})
	}
}

func TestCalculateGratuity_IgnoresTimeOfDay(t *testing.T) {
	doj := time.Date(2019, time.January, 1, 23, 59, 0, 0, time.UTC)
	asOf := time.Date(2025, time.January, 1, 0, 1, 0, 0, time.UTC)

	a1, b1 := CalculateGratuity(doj, decimal.NewFromInt(26000), asOf)
	a2, b2 := CalculateGratuity(truncateDay(doj), decimal.NewFromInt(26000), truncateDay(asOf))
	assert.True(t, a1.Equal(a2))
	assert.True(t, b1.Equal(b2))
}
