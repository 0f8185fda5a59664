package availability

import (
	"testing"
	"time"

	"tavolo/models"

	"github.com/stretchr/testify/assert"
)

// 2026-03-02 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func mondayHours(open, close string, closed bool) []models.OpeningHour {
	return []models.OpeningHour{{Day: 1, Open: open, Close: close, Closed: closed}}
}

func TestEvaluateHoursWindow(t *testing.T) {
	hours := mondayHours("11:00", "22:00", false)

	tests := []struct {
		name    string
		now     time.Time
		open    bool
		message string
	}{
		{"one minute before open", monday(10, 59), false, "We open at 11:00"},
		{"exactly at open", monday(11, 0), true, ""},
		{"one minute before close", monday(21, 59), true, ""},
		{"exactly at close", monday(22, 0), false, "We closed at 22:00"},
		{"after close", monday(23, 30), false, "We closed at 22:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := EvaluateHours(hours, tc.now)
			assert.Equal(t, tc.open, res.Open)
			assert.Equal(t, tc.message, res.Message)
		})
	}
}

func TestClosedFlagOverridesTimeWindow(t *testing.T) {
	hours := mondayHours("11:00", "22:00", true)

	for _, now := range []time.Time{monday(0, 0), monday(12, 0), monday(23, 59)} {
		res := EvaluateHours(hours, now)
		assert.False(t, res.Open)
		assert.Equal(t, "We are closed today", res.Message)
	}
}

func TestMidnightCloseMeansEndOfDay(t *testing.T) {
	hours := mondayHours("18:00", "00:00", false)

	assert.True(t, EvaluateHours(hours, monday(23, 59)).Open)
	assert.False(t, EvaluateHours(hours, monday(17, 59)).Open)
}

func TestAbsentTableIsAlwaysOpen(t *testing.T) {
	assert.True(t, EvaluateHours(nil, monday(3, 0)).Open)
	assert.True(t, EvaluateHours([]models.OpeningHour{}, monday(3, 0)).Open)
}

func TestMissingDayEntryIsOpen(t *testing.T) {
	// table only covers Tuesday; Monday falls through to the permissive default
	hours := []models.OpeningHour{{Day: 2, Open: "11:00", Close: "22:00"}}
	assert.True(t, EvaluateHours(hours, monday(3, 0)).Open)
}

func TestMalformedClockFailsClosed(t *testing.T) {
	for _, bad := range []string{"", "11", "11:xx", "25:00", "11:70", "11:00:00"} {
		res := EvaluateHours(mondayHours(bad, "22:00", false), monday(12, 0))
		assert.False(t, res.Open, "open %q should fail closed", bad)

		res = EvaluateHours(mondayHours("11:00", bad, false), monday(12, 0))
		assert.False(t, res.Open, "close %q should fail closed", bad)
	}
}

func TestCanOrderPolicyBeforeTime(t *testing.T) {
	open := mondayHours("00:00", "00:00", false)

	disabled := &models.OrderingSettings{Enabled: false, FulfillmentTypes: []string{"pickup"}, Hours: open}
	ok, res := CanOrder(disabled, monday(12, 0))
	assert.False(t, ok)
	assert.Equal(t, "Ordering is not available", res.Message)

	noFulfillment := &models.OrderingSettings{Enabled: true, FulfillmentTypes: nil, Hours: open}
	ok, _ = CanOrder(noFulfillment, monday(12, 0))
	assert.False(t, ok)

	ok, _ = CanOrder(nil, monday(12, 0))
	assert.False(t, ok)

	enabled := &models.OrderingSettings{Enabled: true, FulfillmentTypes: []string{"pickup"}, Hours: open}
	ok, _ = CanOrder(enabled, monday(12, 0))
	assert.True(t, ok)
}
