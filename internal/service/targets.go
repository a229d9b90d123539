package service

import (
	"context"

	"github.com/grovert/maintassist/internal/zabbix"
)

// TargetPreview reports which of the requested resources exist in Zabbix,
// without creating anything. Backs the chat confirmation step.
type TargetPreview struct {
	Hosts         []string `json:"hosts"`
	Groups        []string `json:"groups"`
	MissingHosts  []string `json:"missing_hosts,omitempty"`
	MissingGroups []string `json:"missing_groups,omitempty"`
}

// PreviewTargets resolves hosts, groups and tags the same way Create does
// and reports what was found and what was not.
func (s *MaintenanceService) PreviewTargets(ctx context.Context, hosts, groups []string, tags []zabbix.Tag) (*TargetPreview, error) {
	resolved, err := s.resolveTargets(ctx, hosts, groups, tags)
	if err != nil {
		return nil, err
	}
	preview := &TargetPreview{
		Hosts:         []string{},
		Groups:        []string{},
		MissingHosts:  resolved.MissingHosts,
		MissingGroups: resolved.MissingGroups,
	}
	for _, h := range resolved.Hosts {
		preview.Hosts = append(preview.Hosts, h.Host)
	}
	for _, g := range resolved.Groups {
		preview.Groups = append(preview.Groups, g.Name)
	}
	return preview, nil
}

// resolvedTargets holds the outcome of turning requested names and tags
// into concrete Zabbix IDs.
type resolvedTargets struct {
	Hosts         []zabbix.Host
	Groups        []zabbix.HostGroup
	MissingHosts  []string
	MissingGroups []string
}

// resolveTargets looks up the requested hosts (exact match first, then a
// wildcard search per unmatched name), host groups, and tag-selected
// hosts. Hosts are deduplicated by host ID.
func (s *MaintenanceService) resolveTargets(ctx context.Context, hosts, groups []string, tags []zabbix.Tag) (*resolvedTargets, error) {
	out := &resolvedTargets{}
	seen := map[string]bool{}

	addHost := func(h zabbix.Host) {
		if !seen[h.HostID] {
			seen[h.HostID] = true
			out.Hosts = append(out.Hosts, h)
		}
	}

	if len(hosts) > 0 {
		exact, err := s.zbx.GetHosts(ctx, hosts)
		if err != nil {
			return nil, err
		}
		matched := map[string]bool{}
		for _, h := range exact {
			matched[h.Host] = true
			addHost(h)
		}
		for _, name := range hosts {
			if matched[name] {
				continue
			}
			found, err := s.zbx.SearchHosts(ctx, "*"+name+"*")
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				out.MissingHosts = append(out.MissingHosts, name)
				continue
			}
			for _, h := range found {
				addHost(h)
			}
		}
	}

	if len(groups) > 0 {
		found, err := s.zbx.GetHostGroups(ctx, groups)
		if err != nil {
			return nil, err
		}
		matched := map[string]bool{}
		for _, g := range found {
			matched[g.Name] = true
			out.Groups = append(out.Groups, g)
		}
		for _, name := range groups {
			if !matched[name] {
				out.MissingGroups = append(out.MissingGroups, name)
			}
		}
	}

	if len(tags) > 0 {
		tagged, err := s.zbx.GetHostsByTags(ctx, tags)
		if err != nil {
			return nil, err
		}
		for _, h := range tagged {
			addHost(h)
		}
	}

	return out, nil
}
