package service

import (
	"context"

	"github.com/grovert/maintassist/internal/repository"
	"github.com/grovert/maintassist/internal/zabbix"
)

// ZabbixAPI is the slice of the Zabbix client the maintenance service uses.
type ZabbixAPI interface {
	GetHosts(ctx context.Context, names []string) ([]zabbix.Host, error)
	SearchHosts(ctx context.Context, term string) ([]zabbix.Host, error)
	GetHostsByTags(ctx context.Context, tags []zabbix.Tag) ([]zabbix.Host, error)
	GetHostGroups(ctx context.Context, names []string) ([]zabbix.HostGroup, error)
	SearchHostGroups(ctx context.Context, term string) ([]zabbix.HostGroup, error)
	CreateMaintenance(ctx context.Context, params zabbix.CreateMaintenanceParams) (string, error)
	ListMaintenances(ctx context.Context, limit int) ([]zabbix.Maintenance, error)
}

// AuditStore records created maintenance windows locally.
type AuditStore interface {
	Save(ctx context.Context, rec *repository.AuditRecord) error
	Recent(ctx context.Context, limit int) ([]repository.AuditRecord, error)
}
