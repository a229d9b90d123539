package service

import (
	"github.com/grovert/maintassist/internal/recurrence"
)

// DryRunRequest exercises the recurrence pipeline without touching Zabbix.
type DryRunRequest struct {
	RecurrenceType   recurrence.Kind    `json:"recurrence_type"`
	RecurrenceConfig *recurrence.Config `json:"recurrence_config"`
	StartTime        string             `json:"start_time"`
	EndTime          string             `json:"end_time"`
}

// DryRunResult shows what a create call would have sent.
type DryRunResult struct {
	Normalized *recurrence.Config     `json:"normalized_config"`
	TimePeriod *recurrence.TimePeriod `json:"timeperiod"`
	Schedule   recurrence.Summary     `json:"schedule"`
}

// DryRun validates and encodes a routine configuration, then decodes the
// result back. Used to preview a schedule before creating it.
func (s *MaintenanceService) DryRun(req DryRunRequest) (*DryRunResult, error) {
	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	normalized, verr := recurrence.Validate(recurrence.Request{
		Kind:        req.RecurrenceType,
		Config:      req.RecurrenceConfig,
		WindowStart: start.Unix(),
		WindowEnd:   end.Unix(),
	})
	if verr != nil {
		return nil, verr
	}
	period, err := recurrence.Encode(normalized.Kind, normalized.Config, &recurrence.Window{
		Start: start.Unix(),
		End:   end.Unix(),
	})
	if err != nil {
		return nil, err
	}
	summary := recurrence.Decode(*period)
	return &DryRunResult{
		Normalized: normalized.Config,
		TimePeriod: period,
		Schedule:   summary,
	}, nil
}
