package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grovert/maintassist/internal/intelligence"
	"github.com/grovert/maintassist/internal/recurrence"
)

// MaintenanceInfo is one maintenance window shaped for API listings.
type MaintenanceInfo struct {
	MaintenanceID string               `json:"maintenance_id"`
	Name          string               `json:"name"`
	Routine       bool                 `json:"routine"`
	Ticket        string               `json:"ticket,omitempty"`
	ActiveSince   string               `json:"active_since"`
	ActiveTill    string               `json:"active_till"`
	Description   string               `json:"description,omitempty"`
	Hosts         []string             `json:"hosts"`
	Groups        []string             `json:"groups"`
	Schedules     []recurrence.Summary `json:"schedules"`
}

// List fetches all maintenance windows from Zabbix and decodes each time
// period into a human-readable schedule. A window is routine when any of
// its periods recurs.
func (s *MaintenanceService) List(ctx context.Context) ([]MaintenanceInfo, error) {
	maintenances, err := s.zbx.ListMaintenances(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing maintenances: %w", err)
	}

	infos := make([]MaintenanceInfo, 0, len(maintenances))
	for _, m := range maintenances {
		info := MaintenanceInfo{
			MaintenanceID: m.MaintenanceID,
			Name:          m.Name,
			Ticket:        extractTicket(m.Name, m.Description),
			ActiveSince:   formatEpoch(m.ActiveSince),
			ActiveTill:    formatEpoch(m.ActiveTill),
			Description:   m.Description,
			Hosts:         []string{},
			Groups:        []string{},
		}
		for _, h := range m.Hosts {
			info.Hosts = append(info.Hosts, h.Host)
		}
		for _, g := range m.Groups {
			info.Groups = append(info.Groups, g.Name)
		}
		for _, tp := range m.TimePeriods {
			summary := recurrence.Decode(tp)
			info.Schedules = append(info.Schedules, summary)
			if summary.Kind != recurrence.KindOnce {
				info.Routine = true
			}
		}
		if strings.Contains(m.Name, routineLabel) {
			info.Routine = true
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func extractTicket(name, description string) string {
	if t := intelligence.ExtractTicketNumber(name); t != "" {
		return t
	}
	return intelligence.ExtractTicketNumber(description)
}

func formatEpoch(epoch int64) string {
	if epoch == 0 {
		return ""
	}
	return time.Unix(epoch, 0).Local().Format(intelligence.TimeLayout)
}
