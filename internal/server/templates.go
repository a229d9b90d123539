package server

import (
	"github.com/grovert/maintassist/internal/intelligence"
	"github.com/grovert/maintassist/internal/recurrence"
)

// maintenanceTemplate is a ready-made routine the frontend offers as a
// starting point.
type maintenanceTemplate struct {
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	RecurrenceType   recurrence.Kind    `json:"recurrence_type"`
	RecurrenceConfig *recurrence.Config `json:"recurrence_config"`
}

func cfg(startTime, duration int, set func(c *recurrence.Config)) *recurrence.Config {
	c := &recurrence.Config{
		StartTime: intPtr(startTime),
		Duration:  intPtr(duration),
	}
	if set != nil {
		set(c)
	}
	return c
}

func intPtr(v int) *int { return &v }

var maintenanceTemplates = []maintenanceTemplate{
	{
		Name:           "Nightly backup window",
		Description:    "Every night from 01:00 to 03:00",
		RecurrenceType: recurrence.KindDaily,
		RecurrenceConfig: cfg(3600, 7200, func(c *recurrence.Config) {
			c.Every = intPtr(1)
		}),
	},
	{
		Name:           "Weekend patching",
		Description:    "Saturdays and Sundays from 05:00 to 09:00",
		RecurrenceType: recurrence.KindWeekly,
		RecurrenceConfig: cfg(18000, 14400, func(c *recurrence.Config) {
			c.DayOfWeek = intPtr(96)
		}),
	},
	{
		Name:           "Monthly reboot, last Friday",
		Description:    "Last Friday of every month from 22:00 to 23:00",
		RecurrenceType: recurrence.KindMonthly,
		RecurrenceConfig: cfg(79200, 3600, func(c *recurrence.Config) {
			c.DayOfWeek = intPtr(16)
			c.Every = intPtr(5)
		}),
	},
	{
		Name:           "Quarterly certificate rotation",
		Description:    "First Monday of January, April, July and October from 06:00 to 07:00",
		RecurrenceType: recurrence.KindMonthly,
		RecurrenceConfig: cfg(21600, 3600, func(c *recurrence.Config) {
			c.DayOfWeek = intPtr(1)
			c.Every = intPtr(1)
			c.Month = intPtr(585)
		}),
	},
}

var usageExamples = []intelligence.Example{
	{
		Title:   "One-time window",
		Example: "Put web-01 in maintenance tomorrow from 22:00 to 23:30 for ticket 123-4567",
	},
	{
		Title:   "Daily routine",
		Example: "Create a daily maintenance for the Linux servers group every night from 01:00 to 03:00",
	},
	{
		Title:   "Weekly routine",
		Example: "Schedule maintenance for db-01 every Thursday and Friday from 05:00 to 07:00",
	},
	{
		Title:   "Monthly by weekday",
		Example: "Reboot window for web-02 the last Friday of each month from 22:00 to 23:00",
	},
	{
		Title:   "By trigger tag",
		Example: "Maintenance tonight from 02:00 to 04:00 for all hosts tagged env=prod",
	},
}
