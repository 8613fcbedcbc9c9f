package projection_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cesarcasstella/fintrack-pro/internal/models"
	"github.com/cesarcasstella/fintrack-pro/internal/projection"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func activeRule(frequency string, interval int, anchor time.Time) models.RecurringRule {
	return models.RecurringRule{
		ID:             1,
		Type:           models.TypeIncome,
		Amount:         decimal.NewFromInt(1000),
		Description:    "test rule",
		Frequency:      frequency,
		IntervalCount:  interval,
		NextOccurrence: anchor,
		IsActive:       true,
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name        string
		rule        models.RecurringRule
		windowStart time.Time
		windowEnd   time.Time
		want        []time.Time
	}{
		{
			name:        "monthly rule yields three occurrences in a 90 day window",
			rule:        activeRule(models.FreqMonthly, 1, day(2025, time.January, 1)),
			windowStart: day(2025, time.January, 1),
			windowEnd:   day(2025, time.April, 1),
			want: []time.Time{
				day(2025, time.January, 1),
				day(2025, time.February, 1),
				day(2025, time.March, 1),
			},
		},
		{
			name:        "anchor before window keeps interval spacing",
			rule:        activeRule(models.FreqBiweekly, 1, day(2024, time.December, 15)),
			windowStart: day(2025, time.January, 1),
			windowEnd:   day(2025, time.February, 1),
			want: []time.Time{
				day(2025, time.January, 12),
				day(2025, time.January, 26),
			},
		},
		{
			name:        "weekly with interval two",
			rule:        activeRule(models.FreqWeekly, 2, day(2025, time.January, 6)),
			windowStart: day(2025, time.January, 1),
			windowEnd:   day(2025, time.February, 10),
			want: []time.Time{
				day(2025, time.January, 6),
				day(2025, time.January, 20),
				day(2025, time.February, 3),
			},
		},
		{
			name:        "monthly from the 31st clamps and drifts to the shorter month's end",
			rule:        activeRule(models.FreqMonthly, 1, day(2025, time.January, 31)),
			windowStart: day(2025, time.January, 1),
			windowEnd:   day(2025, time.May, 1),
			want: []time.Time{
				day(2025, time.January, 31),
				day(2025, time.February, 28),
				day(2025, time.March, 28),
				day(2025, time.April, 28),
			},
		},
		{
			name:        "zero interval treated as one",
			rule:        activeRule(models.FreqDaily, 0, day(2025, time.January, 1)),
			windowStart: day(2025, time.January, 1),
			windowEnd:   day(2025, time.January, 4),
			want: []time.Time{
				day(2025, time.January, 1),
				day(2025, time.January, 2),
				day(2025, time.January, 3),
			},
		},
		{
			name:        "unknown frequency falls back to monthly",
			rule:        activeRule("quarterly", 3, day(2025, time.January, 1)),
			windowStart: day(2025, time.January, 1),
			windowEnd:   day(2025, time.April, 1),
			want: []time.Time{
				day(2025, time.January, 1),
				day(2025, time.February, 1),
				day(2025, time.March, 1),
			},
		},
		{
			name:        "window end is exclusive",
			rule:        activeRule(models.FreqDaily, 1, day(2025, time.January, 1)),
			windowStart: day(2025, time.January, 1),
			windowEnd:   day(2025, time.January, 2),
			want:        []time.Time{day(2025, time.January, 1)},
		},
		{
			name:        "anchor past the window yields nothing",
			rule:        activeRule(models.FreqDaily, 1, day(2025, time.June, 1)),
			windowStart: day(2025, time.January, 1),
			windowEnd:   day(2025, time.February, 1),
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := projection.Expand(tt.rule, tt.windowStart, tt.windowEnd)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandInactiveRule(t *testing.T) {
	rule := activeRule(models.FreqDaily, 1, day(2025, time.January, 1))
	rule.IsActive = false

	got := projection.Expand(rule, day(2025, time.January, 1), day(2025, time.December, 31))
	assert.Nil(t, got)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		frequency string
		interval  int
		want      time.Time
	}{
		{"daily", day(2025, time.January, 1), models.FreqDaily, 3, day(2025, time.January, 4)},
		{"weekly", day(2025, time.January, 1), models.FreqWeekly, 1, day(2025, time.January, 8)},
		{"biweekly doubles the weeks", day(2025, time.January, 1), models.FreqBiweekly, 2, day(2025, time.January, 29)},
		{"monthly", day(2025, time.January, 15), models.FreqMonthly, 2, day(2025, time.March, 15)},
		{"yearly clamps leap day", day(2024, time.February, 29), models.FreqYearly, 1, day(2025, time.February, 28)},
		{"negative interval treated as one", day(2025, time.January, 1), models.FreqDaily, -5, day(2025, time.January, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := projection.NextOccurrence(tt.date, tt.frequency, tt.interval)
			assert.Equal(t, tt.want, got)
		})
	}
}
