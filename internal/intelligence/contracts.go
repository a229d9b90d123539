package intelligence

import "github.com/grovert/maintassist/internal/recurrence"

// ReplyType classifies what kind of answer the chat assistant produced.
type ReplyType string

const (
	ReplyMaintenanceRequest  ReplyType = "maintenance_request"
	ReplyHelpRequest         ReplyType = "help_request"
	ReplyOffTopic            ReplyType = "off_topic"
	ReplyClarificationNeeded ReplyType = "clarification_needed"
	ReplyError               ReplyType = "error"
)

// validReplyTypes is the set of reply types the model may produce. "error"
// is generated locally, never by the model.
var validReplyTypes = map[ReplyType]bool{
	ReplyMaintenanceRequest: true, ReplyHelpRequest: true,
	ReplyOffTopic: true, ReplyClarificationNeeded: true,
}

// TimeLayout is the date-time format the chat contract uses for the absolute
// maintenance window.
const TimeLayout = "2006-01-02 15:04"

// TriggerTag selects hosts by trigger tag.
type TriggerTag struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// Example is a usage example shown in help replies.
type Example struct {
	Title   string `json:"title"`
	Example string `json:"example"`
}

// ChatReply is the structured output of the chat assistant. For
// maintenance_request replies the scheduling fields are filled in; for the
// other types only Message (and possibly Examples/MissingInfo) matter.
type ChatReply struct {
	Type             ReplyType              `json:"type"`
	Hosts            []string               `json:"hosts,omitempty"`
	Groups           []string               `json:"groups,omitempty"`
	TriggerTags      []TriggerTag           `json:"trigger_tags,omitempty"`
	StartTime        string                 `json:"start_time,omitempty"`
	EndTime          string                 `json:"end_time,omitempty"`
	Description      string                 `json:"description,omitempty"`
	RecurrenceType   recurrence.Kind        `json:"recurrence_type,omitempty"`
	RecurrenceConfig *recurrence.Config     `json:"recurrence_config,omitempty"`
	TicketNumber     string                 `json:"ticket_number,omitempty"`
	Confidence       int                    `json:"confidence,omitempty"`
	Message          string                 `json:"message"`
	Examples         []Example              `json:"examples,omitempty"`
	MissingInfo      []string               `json:"missing_info,omitempty"`
	DetectedInfo     map[string]interface{} `json:"detected_info,omitempty"`
}

// errorReply builds a locally-generated error reply.
func errorReply(message string) *ChatReply {
	return &ChatReply{Type: ReplyError, Message: message}
}
