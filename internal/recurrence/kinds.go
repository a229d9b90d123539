package recurrence

// Kind is the repetition pattern of a maintenance window.
type Kind string

const (
	KindOnce    Kind = "once"
	KindDaily   Kind = "daily"
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
)

// validKinds is the set of recognized recurrence kind strings.
var validKinds = map[Kind]bool{
	KindOnce: true, KindDaily: true, KindWeekly: true, KindMonthly: true,
}

// IsValidKind returns true if the given value is a recognized recurrence kind.
func IsValidKind(k Kind) bool {
	return validKinds[k]
}

// Zabbix timeperiod_type discriminant values. Fixed by the Zabbix API.
const (
	PeriodOnce    = 0
	PeriodDaily   = 2
	PeriodWeekly  = 3
	PeriodMonthly = 4
)

// KindFromPeriodType maps a stored timeperiod_type back to its kind.
// Unknown values map to KindOnce, matching how Zabbix treats them.
func KindFromPeriodType(periodType int) Kind {
	switch periodType {
	case PeriodDaily:
		return KindDaily
	case PeriodWeekly:
		return KindWeekly
	case PeriodMonthly:
		return KindMonthly
	default:
		return KindOnce
	}
}
