package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tavolo/models"
)

// Result is the time-window half of the availability check.
type Result struct {
	Open    bool   `json:"open"`
	Message string `json:"message"`
}

const endOfDay = 24 * 60

// parseClock turns "HH:MM" into minutes since midnight. Malformed strings
// return an error so the gate can fail closed instead of guessing.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad minute in %q", s)
	}
	return h*60 + m, nil
}

// EvaluateHours decides open/closed from the weekly hours table and now.
// An absent or empty table means always open: restaurants that never
// configured hours must not be locked out. A close of "00:00" is end of day.
// The window is [open, close).
func EvaluateHours(hours []models.OpeningHour, now time.Time) Result {
	if len(hours) == 0 {
		return Result{Open: true}
	}

	day := int(now.Weekday())
	var today *models.OpeningHour
	for i := range hours {
		if hours[i].Day == day {
			today = &hours[i]
			break
		}
	}
	if today == nil {
		return Result{Open: true}
	}

	if today.Closed {
		return Result{Open: false, Message: "We are closed today"}
	}

	open, err := parseClock(today.Open)
	if err != nil {
		return Result{Open: false, Message: "We are closed today"}
	}
	closeAt, err := parseClock(today.Close)
	if err != nil {
		return Result{Open: false, Message: "We are closed today"}
	}
	if closeAt == 0 {
		// midnight close means end of day, not start of day
		closeAt = endOfDay
	}

	minute := now.Hour()*60 + now.Minute()
	if minute < open {
		return Result{Open: false, Message: "We open at " + today.Open}
	}
	if minute >= closeAt {
		return Result{Open: false, Message: "We closed at " + today.Close}
	}
	return Result{Open: true}
}

// CanOrder combines the policy checks (ordering enabled, at least one
// fulfillment type accepted) with the time window. Policy failures win over
// time reasons. The result is advisory for the guest UI; checkout re-validates
// the policy half on submit.
func CanOrder(st *models.OrderingSettings, now time.Time) (bool, Result) {
	if st == nil || !st.Enabled || len(st.FulfillmentTypes) == 0 {
		return false, Result{Open: false, Message: "Ordering is not available"}
	}
	res := EvaluateHours(st.Hours, now)
	return res.Open, res
}
