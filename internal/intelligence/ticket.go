package intelligence

import "regexp"

// Ticket numbers follow the service desk's XXX-XXXXXX shape, e.g. 100-178306.
// The prefixed forms are checked too so "ticket: 200-8341" and "#500-43116"
// both resolve.
var ticketPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{3}-\d{3,6})\b`),
	regexp.MustCompile(`(?i)\bticket\s*:?\s*(\d{3}-\d{3,6})\b`),
	regexp.MustCompile(`#(\d{3}-\d{3,6})\b`),
}

// ExtractTicketNumber pulls the first ticket number out of free text, or ""
// when none is present. It runs as a local backstop: if the model misses a
// ticket the user mentioned, the locally extracted one backfills the reply.
func ExtractTicketNumber(text string) string {
	for _, pattern := range ticketPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
