package recurrence

// Config is the loosely-typed recurrence configuration produced by the chat
// parser or supplied directly over the API. All fields are optional; which
// ones are required depends on the recurrence kind. Pointer fields distinguish
// "absent" from a zero value, which matters for presence validation.
//
// JSON field names match the contract the AI prompt establishes, which in
// turn matches the Zabbix timeperiod object.
type Config struct {
	// StartTime is the time of day the window begins, in seconds since
	// midnight (0..86399).
	StartTime *int `json:"start_time,omitempty"`

	// Duration is the window length in seconds.
	Duration *int `json:"duration,omitempty"`

	// Every is "every N days/weeks/months" for daily, weekly and
	// monthly-by-day schedules. For monthly-by-weekday schedules it is the
	// week-occurrence selector instead: 1=first .. 4=fourth, 5=last, with
	// multiple occurrences expressed by summing those ordinals (second and
	// fourth = 6). The sum scheme is what Zabbix stores; it is not a
	// power-of-two bitmask and must not be treated as one.
	Every *int `json:"every,omitempty"`

	// DayOfWeek is a 7-bit mask, Monday=1 .. Sunday=64.
	DayOfWeek *int `json:"dayofweek,omitempty"`

	// Day is a day of the month, 1..31. Mutually exclusive with DayOfWeek
	// for monthly schedules.
	Day *int `json:"day,omitempty"`

	// Month is a 12-bit mask, January=1 .. December=2048. 4095 means every
	// month.
	Month *int `json:"month,omitempty"`
}

// intPtr is a convenience for building configs in code and tests.
func intPtr(v int) *int { return &v }
