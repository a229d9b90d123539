package service

import (
	"fmt"
	"regexp"
	"strings"
)

// routineLabel marks recurring windows in the maintenance name so they can
// be told apart in the Zabbix UI and in listings.
const routineLabel = "Rutinario"

var inlineTicketPattern = regexp.MustCompile(`\s*[-–—]?\s*Ticket:\s*\d{3}-\d{3,6}\s*`)

// buildName derives the maintenance name. A ticket number takes priority;
// otherwise the targeted resources are listed, truncated to fit the Zabbix
// 128-character name limit.
func buildName(routine bool, ticket string, hosts, groups []string) string {
	prefix := "AI Maintenance"
	if routine {
		prefix += " " + routineLabel
	}
	subject := ticket
	if subject == "" {
		resources := append(append([]string{}, hosts...), groups...)
		subject = strings.Join(resources, ", ")
	}
	name := fmt.Sprintf("%s: %s", prefix, subject)
	if len(name) > 128 {
		name = name[:125] + "..."
	}
	return name
}

// buildDescription assembles the window description. Ticket mentions the
// model left inline are stripped so the ticket appears exactly once, in
// the trailing metadata block.
func buildDescription(base, ticket, userName string) string {
	desc := strings.TrimSpace(inlineTicketPattern.ReplaceAllString(base, " "))
	var meta []string
	if ticket != "" {
		meta = append(meta, "Ticket: "+ticket)
	}
	if userName != "" {
		meta = append(meta, "User: "+userName)
	}
	if len(meta) == 0 {
		return desc
	}
	if desc == "" {
		return strings.Join(meta, "\n")
	}
	return desc + "\n\n" + strings.Join(meta, "\n")
}
