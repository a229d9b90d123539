package recurrence

// Request is an inbound scheduling request before validation. For one-time
// maintenances WindowStart/WindowEnd carry the absolute epochs; for recurring
// ones Config carries the schedule.
type Request struct {
	Kind        Kind
	Config      *Config
	WindowStart int64
	WindowEnd   int64
}

// Normalized is a request that passed validation, ready for Encode.
type Normalized struct {
	Kind   Kind
	Config *Config
}

// Validate gate-keeps a scheduling request before it reaches the codec or any
// remote call. It fails on the first violation and mutates nothing in the
// input except the one documented default: a monthly-by-weekday schedule
// without an occurrence selector gets every=1 (first occurrence). All other
// defaulting happens at encode time.
func Validate(req Request) (*Normalized, *ValidationError) {
	if !IsValidKind(req.Kind) {
		return nil, validationErrorf(ReasonUnsupportedKind,
			"unsupported recurrence kind %q: use once, daily, weekly or monthly", req.Kind)
	}

	if req.Kind != KindOnce && req.Config == nil {
		return nil, validationErrorf(ReasonMissingConfig,
			"%s maintenance requires a recurrence configuration", req.Kind)
	}

	cfg := req.Config

	switch req.Kind {
	case KindWeekly:
		if cfg.DayOfWeek == nil {
			return nil, validationErrorf(ReasonInvalidDayOfWeekMask,
				"weekly maintenance requires a day-of-week selection")
		}
		if !validDayMask(*cfg.DayOfWeek) {
			return nil, validationErrorf(ReasonInvalidDayOfWeekMask,
				"day-of-week mask must be between 1 and 127, got %d", *cfg.DayOfWeek)
		}

	case KindMonthly:
		hasDay := cfg.Day != nil
		hasDayOfWeek := cfg.DayOfWeek != nil

		if !hasDay && !hasDayOfWeek {
			return nil, validationErrorf(ReasonAmbiguousMonthlySelector,
				"monthly maintenance needs a day of the month or a weekday selection")
		}
		if hasDay && hasDayOfWeek {
			return nil, validationErrorf(ReasonAmbiguousMonthlySelector,
				"monthly maintenance may select a day of the month or a weekday, not both")
		}

		if hasDay && (*cfg.Day < 1 || *cfg.Day > 31) {
			return nil, validationErrorf(ReasonInvalidDayOfMonth,
				"day of month must be between 1 and 31, got %d", *cfg.Day)
		}

		if hasDayOfWeek {
			if !validDayMask(*cfg.DayOfWeek) {
				return nil, validationErrorf(ReasonInvalidDayOfWeekMask,
					"day-of-week mask must be between 1 and 127, got %d", *cfg.DayOfWeek)
			}
			// Every is the week-occurrence selector here. The accepted
			// range matches what Zabbix stores; single occurrences are
			// 1-5 and composites are sums of those.
			if cfg.Every == nil {
				cfg.Every = intPtr(1)
			} else if *cfg.Every < 1 || *cfg.Every > 31 {
				return nil, validationErrorf(ReasonInvalidOccurrenceSelector,
					"week occurrence must be 1=first, 2=second, 3=third, 4=fourth, 5=last or a sum of those, got %d", *cfg.Every)
			}
		}

		if cfg.Month != nil && (*cfg.Month < 1 || *cfg.Month > AllMonths) {
			return nil, validationErrorf(ReasonInvalidMonthMask,
				"month mask must be between 1 and 4095, got %d", *cfg.Month)
		}

		if cfg.StartTime == nil || cfg.Duration == nil {
			return nil, validationErrorf(ReasonMissingTimingField,
				"monthly maintenance requires start_time and duration")
		}

	case KindOnce:
		if req.WindowEnd <= req.WindowStart {
			return nil, validationErrorf(ReasonInvalidTimeWindow,
				"end time must be after start time")
		}
	}

	return &Normalized{Kind: req.Kind, Config: cfg}, nil
}

func validDayMask(mask int) bool {
	return mask >= 1 && mask <= MaxDayOfWeekMask
}
