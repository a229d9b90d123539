package recurrence

// Window is the absolute start/end pair for one-time maintenances, as Unix
// epochs.
type Window struct {
	Start int64
	End   int64
}

// Encode translates a recurrence kind and configuration into the timeperiod
// record the Zabbix maintenance API expects. For KindOnce the window supplies
// the absolute bounds and cfg may be nil; for every other kind cfg carries
// the schedule.
//
// Encode applies the defaults the Zabbix API would: every=1 for daily and
// weekly, every=1 and month=4095 (all months) for monthly. Timing fields are
// range-checked here: start_time must fall within the day ([0, 86400)) and
// duration must be positive. It re-checks the
// monthly day/dayofweek exclusivity even though Validate enforces it, since
// this is the last step before an inconsistent record would reach the remote
// API.
func Encode(kind Kind, cfg *Config, window *Window) (*TimePeriod, error) {
	switch kind {
	case KindOnce:
		if window == nil {
			return nil, configErrorf("one-time maintenance requires an absolute time window")
		}
		return &TimePeriod{
			Type:      PeriodOnce,
			StartDate: window.Start,
			Period:    int(window.End - window.Start),
		}, nil

	case KindDaily:
		if err := requireTiming(cfg, "daily"); err != nil {
			return nil, err
		}
		return &TimePeriod{
			Type:      PeriodDaily,
			StartTime: *cfg.StartTime,
			Period:    *cfg.Duration,
			Every:     everyOrDefault(cfg),
		}, nil

	case KindWeekly:
		if err := requireTiming(cfg, "weekly"); err != nil {
			return nil, err
		}
		if cfg.DayOfWeek == nil {
			return nil, configErrorf("weekly maintenance requires dayofweek")
		}
		return &TimePeriod{
			Type:      PeriodWeekly,
			StartTime: *cfg.StartTime,
			Period:    *cfg.Duration,
			DayOfWeek: *cfg.DayOfWeek,
			Every:     everyOrDefault(cfg),
		}, nil

	case KindMonthly:
		if err := requireTiming(cfg, "monthly"); err != nil {
			return nil, err
		}
		hasDay := cfg.Day != nil
		hasDayOfWeek := cfg.DayOfWeek != nil
		if hasDay == hasDayOfWeek {
			return nil, configErrorf("monthly maintenance requires exactly one of day or dayofweek")
		}

		tp := &TimePeriod{
			Type:      PeriodMonthly,
			StartTime: *cfg.StartTime,
			Period:    *cfg.Duration,
			Every:     everyOrDefault(cfg),
			Month:     AllMonths,
		}
		if cfg.Month != nil {
			tp.Month = *cfg.Month
		}
		if hasDay {
			tp.Day = *cfg.Day
		} else {
			// Every is the week-occurrence selector here, not an interval.
			tp.DayOfWeek = *cfg.DayOfWeek
		}
		return tp, nil

	default:
		return nil, configErrorf("unsupported recurrence kind %q", kind)
	}
}

const secondsPerDay = 86400

func requireTiming(cfg *Config, kind string) error {
	if cfg == nil {
		return configErrorf("%s maintenance requires a recurrence configuration", kind)
	}
	if cfg.StartTime == nil {
		return configErrorf("%s maintenance requires start_time", kind)
	}
	if *cfg.StartTime < 0 || *cfg.StartTime >= secondsPerDay {
		return configErrorf("%s start_time must be between 0 and 86399 seconds since midnight, got %d", kind, *cfg.StartTime)
	}
	if cfg.Duration == nil {
		return configErrorf("%s maintenance requires duration", kind)
	}
	if *cfg.Duration <= 0 {
		return configErrorf("%s duration must be positive, got %d", kind, *cfg.Duration)
	}
	return nil
}

func everyOrDefault(cfg *Config) int {
	if cfg.Every != nil {
		return *cfg.Every
	}
	return 1
}
