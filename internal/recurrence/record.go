package recurrence

import "encoding/json"

// TimePeriod is the wire record the Zabbix maintenance.create call expects in
// its timeperiods array. Field names and discriminant values are fixed by the
// Zabbix API. A record is built fresh for every create call and never mutated
// afterwards.
type TimePeriod struct {
	Type int `json:"timeperiod_type"`

	// StartDate is the absolute start epoch, one-time periods only.
	StartDate int64 `json:"start_date,omitempty"`

	// StartTime is seconds since midnight, recurring periods only.
	StartTime int `json:"start_time,omitempty"`

	// Period is the window length in seconds. For one-time periods it is
	// end minus start.
	Period int `json:"period,omitempty"`

	// Every carries "every N" for daily/weekly/monthly-by-day, and the
	// week-occurrence selector for monthly-by-weekday.
	Every int `json:"every,omitempty"`

	DayOfWeek int `json:"dayofweek,omitempty"`
	Day       int `json:"day,omitempty"`
	Month     int `json:"month,omitempty"`
}

// MarshalJSON keeps start_time in the payload for recurring records even when
// the window starts at midnight. Zabbix would default an absent start_time to
// 0 anyway, but the record should carry the value it was built with.
func (p TimePeriod) MarshalJSON() ([]byte, error) {
	type plain TimePeriod
	if p.Type == PeriodOnce {
		return json.Marshal(plain(p))
	}
	return json.Marshal(struct {
		plain
		StartTime int `json:"start_time"`
	}{plain(p), p.StartTime})
}
