package recurrence

import "fmt"

// Summary is the human-readable rendering of a stored timeperiod record.
type Summary struct {
	Kind Kind `json:"kind"`

	// DayNames lists the weekdays in the dayofweek mask, Monday-first.
	DayNames []string `json:"day_names,omitempty"`

	// MonthNames lists the months in the month mask, January-first. Empty
	// when the record carries no month restriction (absent or all months).
	MonthNames []string `json:"month_names,omitempty"`

	// Occurrence labels the week-occurrence selector of a monthly-by-weekday
	// schedule: "first".."fourth", "last", or a composite label for summed
	// selectors (see OccurrenceComposite).
	Occurrence string `json:"occurrence,omitempty"`

	// OccurrenceComposite is set when the selector is a sum of multiple
	// ordinals. Such sums are not uniquely invertible (6 could be 2+4 or
	// 1+5), so the label reports the sum instead of guessing a set.
	OccurrenceComposite bool `json:"occurrence_composite,omitempty"`

	// StartOfDay is the window start as "HH:MM", recurring schedules only.
	StartOfDay string `json:"start_of_day,omitempty"`

	// DurationLabel is the window length as "Nh Mm".
	DurationLabel string `json:"duration_label,omitempty"`
}

// occurrenceLabels maps the single-occurrence selector values. These are
// ordinals, not bit flags: sums of them are handled separately.
var occurrenceLabels = map[int]string{
	1: "first", 2: "second", 3: "third", 4: "fourth", 5: "last",
}

// Decode renders a stored timeperiod record into a human-readable summary.
// It is total over well-formed records: unknown or absent optional fields
// simply omit the derived value, and a month mask equal to AllMonths is
// treated as "no restriction" rather than listed out.
func Decode(tp TimePeriod) Summary {
	kind := KindFromPeriodType(tp.Type)
	s := Summary{Kind: kind}

	if kind == KindOnce {
		if tp.Period > 0 {
			s.DurationLabel = durationLabel(tp.Period)
		}
		return s
	}

	s.StartOfDay = clockLabel(tp.StartTime)
	if tp.Period > 0 {
		s.DurationLabel = durationLabel(tp.Period)
	}

	if tp.DayOfWeek > 0 {
		s.DayNames = NamesFromMask(tp.DayOfWeek, DayNames)
	}

	if kind == KindMonthly {
		if tp.Month > 0 && tp.Month != AllMonths {
			s.MonthNames = NamesFromMask(tp.Month, MonthNames)
		}
		// Every is an occurrence selector only for by-weekday schedules.
		if tp.DayOfWeek > 0 && tp.Every > 0 {
			s.Occurrence, s.OccurrenceComposite = occurrenceLabel(tp.Every)
		}
	}

	return s
}

// occurrenceLabel resolves a week-occurrence selector to a label. Values 1-5
// decode exactly. Larger values are sums of multiple ordinals; because the
// sum scheme is ambiguous (1+5 and 2+4 both give 6), the label reports the
// sum without claiming a decomposition.
func occurrenceLabel(every int) (string, bool) {
	if label, ok := occurrenceLabels[every]; ok {
		return label, false
	}
	return fmt.Sprintf("occurrence sum %d", every), true
}

func clockLabel(secondsOfDay int) string {
	h := secondsOfDay / 3600
	m := (secondsOfDay % 3600) / 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

func durationLabel(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %dm", h, m)
}
