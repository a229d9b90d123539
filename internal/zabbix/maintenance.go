package zabbix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/grovert/maintassist/internal/recurrence"
)

// HostRef references a host by ID in maintenance.create params.
type HostRef struct {
	HostID string `json:"hostid"`
}

// GroupRef references a host group by ID in maintenance.create params.
type GroupRef struct {
	GroupID string `json:"groupid"`
}

// CreateMaintenanceParams are the maintenance.create parameters. The
// maintenance type is always 0 (with data collection).
type CreateMaintenanceParams struct {
	Name            string                  `json:"name"`
	ActiveSince     int64                   `json:"active_since"`
	ActiveTill      int64                   `json:"active_till"`
	Description     string                  `json:"description,omitempty"`
	MaintenanceType int                     `json:"maintenance_type"`
	TimePeriods     []recurrence.TimePeriod `json:"timeperiods"`
	Hosts           []HostRef               `json:"hosts,omitempty"`
	Groups          []GroupRef              `json:"groups,omitempty"`
	Tags            []Tag                   `json:"tags,omitempty"`
}

type createResult struct {
	MaintenanceIDs []string `json:"maintenanceids"`
}

// CreateMaintenance creates a maintenance window and returns its ID.
func (c *Client) CreateMaintenance(ctx context.Context, params CreateMaintenanceParams) (string, error) {
	var result createResult
	if err := c.call(ctx, "maintenance.create", params, &result); err != nil {
		return "", err
	}
	if len(result.MaintenanceIDs) == 0 {
		return "", fmt.Errorf("maintenance.create returned no IDs")
	}
	return result.MaintenanceIDs[0], nil
}

// Maintenance is a maintenance window as read back from the API.
type Maintenance struct {
	MaintenanceID string                  `json:"maintenanceid"`
	Name          string                  `json:"name"`
	ActiveSince   int64                   `json:"active_since"`
	ActiveTill    int64                   `json:"active_till"`
	Description   string                  `json:"description"`
	TimePeriods   []recurrence.TimePeriod `json:"timeperiods"`
	Hosts         []Host                  `json:"hosts"`
	Groups        []HostGroup             `json:"groups"`
}

// flexInt decodes Zabbix numeric fields, which arrive either as JSON
// numbers or as quoted strings depending on the API version.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parsing numeric field %q: %w", string(data), err)
	}
	*f = flexInt(v)
	return nil
}

type timePeriodWire struct {
	Type      flexInt `json:"timeperiod_type"`
	StartDate flexInt `json:"start_date"`
	StartTime flexInt `json:"start_time"`
	Period    flexInt `json:"period"`
	Every     flexInt `json:"every"`
	DayOfWeek flexInt `json:"dayofweek"`
	Day       flexInt `json:"day"`
	Month     flexInt `json:"month"`
}

func (w timePeriodWire) toTimePeriod() recurrence.TimePeriod {
	return recurrence.TimePeriod{
		Type:      int(w.Type),
		StartDate: int64(w.StartDate),
		StartTime: int(w.StartTime),
		Period:    int(w.Period),
		Every:     int(w.Every),
		DayOfWeek: int(w.DayOfWeek),
		Day:       int(w.Day),
		Month:     int(w.Month),
	}
}

type maintenanceWire struct {
	MaintenanceID string           `json:"maintenanceid"`
	Name          string           `json:"name"`
	ActiveSince   flexInt          `json:"active_since"`
	ActiveTill    flexInt          `json:"active_till"`
	Description   string           `json:"description"`
	TimePeriods   []timePeriodWire `json:"timeperiods"`
	Hosts         []Host           `json:"hosts"`
	Groups        []HostGroup      `json:"groups"`
}

// UnmarshalJSON tolerates the string-typed numerics Zabbix emits.
func (m *Maintenance) UnmarshalJSON(data []byte) error {
	var wire maintenanceWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	m.MaintenanceID = wire.MaintenanceID
	m.Name = wire.Name
	m.ActiveSince = int64(wire.ActiveSince)
	m.ActiveTill = int64(wire.ActiveTill)
	m.Description = wire.Description
	m.Hosts = wire.Hosts
	m.Groups = wire.Groups
	m.TimePeriods = make([]recurrence.TimePeriod, 0, len(wire.TimePeriods))
	for _, tp := range wire.TimePeriods {
		m.TimePeriods = append(m.TimePeriods, tp.toTimePeriod())
	}
	return nil
}

// ListMaintenances fetches maintenance windows with their time periods,
// hosts and groups expanded. limit <= 0 means all.
func (c *Client) ListMaintenances(ctx context.Context, limit int) ([]Maintenance, error) {
	params := map[string]interface{}{
		"output":            "extend",
		"selectTimeperiods": "extend",
		"selectHosts":       []string{"hostid", "host", "name"},
		"selectHostGroups":  []string{"groupid", "name"},
	}
	if limit > 0 {
		params["limit"] = limit
	}
	var maintenances []Maintenance
	err := c.call(ctx, "maintenance.get", params, &maintenances)
	return maintenances, err
}
