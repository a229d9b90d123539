package intelligence

import (
	"context"
	"fmt"
	"time"

	"github.com/grovert/maintassist/internal/llm"
	"github.com/grovert/maintassist/internal/recurrence"
)

// ChatService turns free-form user text into a structured chat reply.
type ChatService interface {
	Respond(ctx context.Context, userText string) (*ChatReply, error)
}

type chatService struct {
	client llm.Client
	now    func() time.Time
}

// NewChatService creates a ChatService backed by an LLM client.
func NewChatService(client llm.Client) ChatService {
	return &chatService{client: client, now: time.Now}
}

// Respond sends the user's message to the model and post-processes the
// structured reply: ticket backfill from local extraction, and recurrence
// validation for maintenance requests. Validation failures come back as an
// error reply with the validator's user-facing message, not as a Go error:
// they are conversation turns, not transport failures.
func (s *chatService) Respond(ctx context.Context, userText string) (*ChatReply, error) {
	ticket := ExtractTicketNumber(userText)

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: chatSystemPrompt,
		UserPrompt:   buildChatUserPrompt(s.now(), userText),
	})
	if err != nil {
		return nil, fmt.Errorf("llm chat failed: %w", err)
	}

	reply, err := llm.ExtractJSON[ChatReply](resp.Text, validateChatReply)
	if err != nil {
		return errorReply("I had trouble understanding the assistant's answer. Could you rephrase your request?"), nil
	}

	if reply.Type != ReplyMaintenanceRequest {
		return &reply, nil
	}

	if reply.TicketNumber == "" && ticket != "" {
		reply.TicketNumber = ticket
	}

	if msg := checkMaintenanceReply(&reply); msg != "" {
		return errorReply(msg), nil
	}

	return &reply, nil
}

// validateChatReply is the schema validator for ExtractJSON.
func validateChatReply(r ChatReply) error {
	if !validReplyTypes[r.Type] {
		return fmt.Errorf("unknown reply type: %s", r.Type)
	}
	return nil
}

// checkMaintenanceReply applies the request-level checks a maintenance reply
// must pass before it is shown to the user for confirmation. Returns a
// user-facing message on failure, "" when the reply is acceptable.
func checkMaintenanceReply(reply *ChatReply) string {
	if reply.StartTime == "" || reply.EndTime == "" {
		return "I am missing the maintenance start or end time. Could you provide the full time window?"
	}
	if reply.RecurrenceType == "" {
		return "I could not determine whether this is a one-time or recurring maintenance. Could you clarify?"
	}

	req := recurrence.Request{
		Kind:   reply.RecurrenceType,
		Config: reply.RecurrenceConfig,
	}
	if reply.RecurrenceType == recurrence.KindOnce {
		// The absolute window is validated at creation time, once the
		// date strings are parsed. Give the validator an ordered pair so
		// the kind check still runs.
		req.WindowStart, req.WindowEnd = 0, 1
	}

	if _, verr := recurrence.Validate(req); verr != nil {
		return verr.Message
	}
	return ""
}
