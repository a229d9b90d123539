package zabbix

import "context"

// Host is a Zabbix host. Zabbix returns all scalar fields as strings.
type Host struct {
	HostID string `json:"hostid"`
	Host   string `json:"host"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

// HostGroup is a Zabbix host group.
type HostGroup struct {
	GroupID string `json:"groupid"`
	Name    string `json:"name"`
}

// Tag is a problem tag used to select hosts or scope a maintenance.
type Tag struct {
	Tag   string `json:"tag"`
	Value string `json:"value,omitempty"`
}

const searchLimit = 20

// GetHosts fetches hosts whose technical name matches one of names exactly.
func (c *Client) GetHosts(ctx context.Context, names []string) ([]Host, error) {
	var hosts []Host
	err := c.call(ctx, "host.get", map[string]interface{}{
		"filter": map[string]interface{}{"host": names},
		"output": []string{"hostid", "host", "name", "status"},
	}, &hosts)
	return hosts, err
}

// SearchHosts does a wildcard search over host names, capped at 20 results.
func (c *Client) SearchHosts(ctx context.Context, term string) ([]Host, error) {
	var hosts []Host
	err := c.call(ctx, "host.get", map[string]interface{}{
		"search":                 map[string]interface{}{"host": term},
		"searchWildcardsEnabled": true,
		"output":                 []string{"hostid", "host", "name", "status"},
		"limit":                  searchLimit,
	}, &hosts)
	return hosts, err
}

// GetHostsByTags fetches hosts carrying any of the given problem tags.
func (c *Client) GetHostsByTags(ctx context.Context, tags []Tag) ([]Host, error) {
	conds := make([]map[string]interface{}, 0, len(tags))
	for _, t := range tags {
		cond := map[string]interface{}{"tag": t.Tag, "operator": 0}
		if t.Value != "" {
			cond["value"] = t.Value
		}
		conds = append(conds, cond)
	}
	var hosts []Host
	err := c.call(ctx, "host.get", map[string]interface{}{
		"tags":   conds,
		"output": []string{"hostid", "host", "name", "status"},
	}, &hosts)
	return hosts, err
}

// GetHostGroups fetches groups whose name matches one of names exactly.
func (c *Client) GetHostGroups(ctx context.Context, names []string) ([]HostGroup, error) {
	var groups []HostGroup
	err := c.call(ctx, "hostgroup.get", map[string]interface{}{
		"filter": map[string]interface{}{"name": names},
		"output": []string{"groupid", "name"},
	}, &groups)
	return groups, err
}

// SearchHostGroups does a wildcard search over group names, capped at 20.
func (c *Client) SearchHostGroups(ctx context.Context, term string) ([]HostGroup, error) {
	var groups []HostGroup
	err := c.call(ctx, "hostgroup.get", map[string]interface{}{
		"search":                 map[string]interface{}{"name": term},
		"searchWildcardsEnabled": true,
		"output":                 []string{"groupid", "name"},
		"limit":                  searchLimit,
	}, &groups)
	return groups, err
}

// GetHostsByGroups fetches every host belonging to the given groups.
func (c *Client) GetHostsByGroups(ctx context.Context, groupIDs []string) ([]Host, error) {
	var hosts []Host
	err := c.call(ctx, "host.get", map[string]interface{}{
		"groupids": groupIDs,
		"output":   []string{"hostid", "host", "name", "status"},
	}, &hosts)
	return hosts, err
}
