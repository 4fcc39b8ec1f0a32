package domain

import "time"

// ViewThresholds is the {low, medium, high} task-count triple bound to a view.
type ViewThresholds struct {
	Low    int
	Medium int
	High   int
}

var viewThresholds = map[ViewGranularity]ViewThresholds{
	ViewToday:   {Low: 5, Medium: 15, High: 25},
	ViewWeekly:  {Low: 10, Medium: 25, High: 40},
	ViewMonthly: {Low: 20, Medium: 40, High: 60},
}

var viewSpanDays = map[ViewGranularity]int{
	ViewToday:   1,
	ViewWeekly:  7,
	ViewMonthly: 30,
}

var viewPeriods = map[ViewGranularity]string{
	ViewToday:   "today",
	ViewWeekly:  "this week",
	ViewMonthly: "this month",
}

// Thresholds returns the task-count triple for v.
func (v ViewGranularity) Thresholds() (ViewThresholds, error) {
	t, ok := viewThresholds[v]
	if !ok {
		return ViewThresholds{}, newInputError("view", "unknown view %q", v)
	}
	return t, nil
}

// Valid reports whether v is a known view.
func (v ViewGranularity) Valid() bool {
	_, ok := viewThresholds[v]
	return ok
}

// Period returns the phrase used when talking about the window, e.g. "this week".
func (v ViewGranularity) Period() string {
	if p, ok := viewPeriods[v]; ok {
		return p
	}
	return viewPeriods[ViewToday]
}

// Window returns the half-open [start, end) range the view covers, ending at
// the close of now's calendar day in now's location.
func (v ViewGranularity) Window(now time.Time) (time.Time, time.Time) {
	days, ok := viewSpanDays[v]
	if !ok {
		days = 1
	}
	y, m, d := now.Date()
	endOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return endOfDay.AddDate(0, 0, -days), endOfDay
}
