package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/grovert/maintassist/internal/intelligence"
	"github.com/grovert/maintassist/internal/recurrence"
	"github.com/grovert/maintassist/internal/repository"
	"github.com/grovert/maintassist/internal/zabbix"
)

// recurring windows stay active for a year; Zabbix requires a finite
// active_till even when the schedule itself repeats indefinitely.
const recurringActivePeriod = 365 * 24 * time.Hour

// MaintenanceService turns validated chat replies into Zabbix maintenance
// windows and reads existing windows back.
type MaintenanceService struct {
	zbx   ZabbixAPI
	audit AuditStore
	log   *zap.Logger
	now   func() time.Time
}

func NewMaintenanceService(zbx ZabbixAPI, audit AuditStore, log *zap.Logger) *MaintenanceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MaintenanceService{zbx: zbx, audit: audit, log: log, now: time.Now}
}

// CreateRequest carries everything needed to create one window. StartTime
// and EndTime use the "2006-01-02 15:04" layout.
type CreateRequest struct {
	Hosts            []string                  `json:"hosts"`
	Groups           []string                  `json:"groups"`
	TriggerTags      []intelligence.TriggerTag `json:"trigger_tags"`
	StartTime        string                    `json:"start_time"`
	EndTime          string                    `json:"end_time"`
	Description      string                    `json:"description"`
	RecurrenceType   recurrence.Kind           `json:"recurrence_type"`
	RecurrenceConfig *recurrence.Config        `json:"recurrence_config"`
	TicketNumber     string                    `json:"ticket_number"`
	UserID           string                    `json:"user_id"`
	UserName         string                    `json:"user_name"`
}

// CreateResult summarizes a successful creation.
type CreateResult struct {
	MaintenanceID string             `json:"maintenance_id"`
	Name          string             `json:"name"`
	Message       string             `json:"message"`
	Hosts         []string           `json:"hosts"`
	Groups        []string           `json:"groups"`
	MissingHosts  []string           `json:"missing_hosts,omitempty"`
	MissingGroups []string           `json:"missing_groups,omitempty"`
	Schedule      recurrence.Summary `json:"schedule"`
}

// Create validates, encodes, and submits a maintenance window, then
// records it in the local audit log.
func (s *MaintenanceService) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	kind := req.RecurrenceType
	if kind == "" {
		kind = recurrence.KindOnce
	}
	normalized, verr := recurrence.Validate(recurrence.Request{
		Kind:        kind,
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

	targets, err := s.resolveTargets(ctx, req.Hosts, req.Groups, toZabbixTags(req.TriggerTags))
	if err != nil {
		return nil, fmt.Errorf("resolving targets: %w", err)
	}
	if len(targets.Hosts) == 0 && len(targets.Groups) == 0 {
		return nil, fmt.Errorf("no hosts or groups matched the request (missing hosts: %s)",
			strings.Join(targets.MissingHosts, ", "))
	}

	routine := normalized.Kind != recurrence.KindOnce
	name := buildName(routine, req.TicketNumber, req.Hosts, req.Groups)
	description := buildDescription(req.Description, req.TicketNumber, req.UserName)

	activeTill := end.Unix()
	if routine {
		activeTill = start.Add(recurringActivePeriod).Unix()
	}
	params := zabbix.CreateMaintenanceParams{
		Name:            name,
		ActiveSince:     start.Unix(),
		ActiveTill:      activeTill,
		Description:     description,
		MaintenanceType: 0,
		TimePeriods:     []recurrence.TimePeriod{*period},
	}
	for _, h := range targets.Hosts {
		params.Hosts = append(params.Hosts, zabbix.HostRef{HostID: h.HostID})
	}
	for _, g := range targets.Groups {
		params.Groups = append(params.Groups, zabbix.GroupRef{GroupID: g.GroupID})
	}

	id, err := s.zbx.CreateMaintenance(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating maintenance: %w", err)
	}
	s.log.Info("maintenance created",
		zap.String("maintenance_id", id),
		zap.String("name", name),
		zap.Int("hosts", len(targets.Hosts)),
		zap.Int("groups", len(targets.Groups)))

	s.recordAudit(ctx, id, name, req, normalized.Kind, targets, start.Unix(), activeTill)

	summary := recurrence.Decode(*period)
	result := &CreateResult{
		MaintenanceID: id,
		Name:          name,
		Message:       buildSuccessMessage(name, id, targets, summary),
		MissingHosts:  targets.MissingHosts,
		MissingGroups: targets.MissingGroups,
		Schedule:      summary,
	}
	for _, h := range targets.Hosts {
		result.Hosts = append(result.Hosts, h.Host)
	}
	for _, g := range targets.Groups {
		result.Groups = append(result.Groups, g.Name)
	}
	return result, nil
}

// recordAudit persists the creation locally. Audit failures are logged
// but never fail the request; the window already exists in Zabbix.
func (s *MaintenanceService) recordAudit(ctx context.Context, id, name string, req CreateRequest, kind recurrence.Kind, targets *resolvedTargets, since, till int64) {
	if s.audit == nil {
		return
	}
	rec := &repository.AuditRecord{
		MaintenanceID:  id,
		Name:           name,
		UserID:         req.UserID,
		Ticket:         req.TicketNumber,
		RecurrenceKind: kind,
		ActiveSince:    since,
		ActiveTill:     till,
	}
	for _, h := range targets.Hosts {
		rec.Hosts = append(rec.Hosts, h.Host)
	}
	for _, g := range targets.Groups {
		rec.Groups = append(rec.Groups, g.Name)
	}
	if err := s.audit.Save(ctx, rec); err != nil {
		s.log.Warn("audit record not saved", zap.String("maintenance_id", id), zap.Error(err))
	}
}

// History returns the most recent locally recorded creations.
func (s *MaintenanceService) History(ctx context.Context, limit int) ([]repository.AuditRecord, error) {
	if s.audit == nil {
		return nil, fmt.Errorf("audit store not configured")
	}
	return s.audit.Recent(ctx, limit)
}

func buildSuccessMessage(name, id string, targets *resolvedTargets, summary recurrence.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Maintenance '%s' created with ID %s covering %d host(s)",
		name, id, len(targets.Hosts))
	if len(targets.Groups) > 0 {
		fmt.Fprintf(&b, " and %d group(s)", len(targets.Groups))
	}
	b.WriteString(".")
	if summary.Kind != recurrence.KindOnce {
		fmt.Fprintf(&b, " Schedule: %s at %s for %s.",
			describeSchedule(summary), summary.StartOfDay, summary.DurationLabel)
	}
	if len(targets.MissingHosts) > 0 {
		fmt.Fprintf(&b, " Not found: %s.", strings.Join(targets.MissingHosts, ", "))
	}
	return b.String()
}

func describeSchedule(summary recurrence.Summary) string {
	switch summary.Kind {
	case recurrence.KindDaily:
		return "daily"
	case recurrence.KindWeekly:
		return "weekly on " + strings.Join(summary.DayNames, ", ")
	case recurrence.KindMonthly:
		parts := []string{"monthly"}
		if summary.Occurrence != "" {
			parts = append(parts, summary.Occurrence)
		}
		if len(summary.DayNames) > 0 {
			parts = append(parts, strings.Join(summary.DayNames, ", "))
		}
		if len(summary.MonthNames) > 0 {
			parts = append(parts, "in "+strings.Join(summary.MonthNames, ", "))
		}
		return strings.Join(parts, " ")
	default:
		return string(summary.Kind)
	}
}

func parseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("start_time and end_time are required")
	}
	start, err := time.ParseInLocation(intelligence.TimeLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_time %q: %w", startStr, err)
	}
	end, err := time.ParseInLocation(intelligence.TimeLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_time %q: %w", endStr, err)
	}
	return start, end, nil
}

func toZabbixTags(tags []intelligence.TriggerTag) []zabbix.Tag {
	out := make([]zabbix.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, zabbix.Tag{Tag: t.Tag, Value: t.Value})
	}
	return out
}
