package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/grovert/maintassist/internal/llm"
	"github.com/grovert/maintassist/internal/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns canned text without any transport.
type fakeClient struct {
	text string
	err  error
	last llm.GenerateRequest
}

func (f *fakeClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: f.text, Model: "fake"}, nil
}

func (f *fakeClient) Available(context.Context) bool { return true }

func newChatService(client llm.Client) *chatService {
	return &chatService{
		client: client,
		now:    func() time.Time { return time.Date(2025, 8, 24, 12, 0, 0, 0, time.UTC) },
	}
}

func maintenanceReplyJSON(t *testing.T, mutate func(map[string]interface{})) string {
	t.Helper()
	reply := map[string]interface{}{
		"type":            "maintenance_request",
		"hosts":           []string{"srv-web01"},
		"start_time":      "2025-08-25 08:00",
		"end_time":        "2025-08-25 10:00",
		"description":     "Monitoring-level maintenance",
		"recurrence_type": "once",
		"confidence":      95,
		"message":         "Prepared your maintenance window.",
	}
	if mutate != nil {
		mutate(reply)
	}
	data, err := json.Marshal(reply)
	require.NoError(t, err)
	return string(data)
}

func TestChatService_MaintenanceRequest(t *testing.T) {
	client := &fakeClient{text: maintenanceReplyJSON(t, nil)}
	svc := newChatService(client)

	reply, err := svc.Respond(context.Background(), "maintenance for srv-web01 tomorrow 8 to 10")
	require.NoError(t, err)

	assert.Equal(t, ReplyMaintenanceRequest, reply.Type)
	assert.Equal(t, []string{"srv-web01"}, reply.Hosts)
	assert.Contains(t, client.last.UserPrompt, "CURRENT DATE: 2025-08-24")
	assert.Contains(t, client.last.UserPrompt, "TOMORROW: 2025-08-25")
}

func TestChatService_TicketBackfill(t *testing.T) {
	client := &fakeClient{text: maintenanceReplyJSON(t, nil)}
	svc := newChatService(client)

	reply, err := svc.Respond(context.Background(), "maintenance for srv-web01, ticket 100-178306")
	require.NoError(t, err)
	assert.Equal(t, "100-178306", reply.TicketNumber)
}

func TestChatService_ModelTicketWins(t *testing.T) {
	client := &fakeClient{text: maintenanceReplyJSON(t, func(m map[string]interface{}) {
		m["ticket_number"] = "200-8341"
	})}
	svc := newChatService(client)

	reply, err := svc.Respond(context.Background(), "maintenance, ticket 100-178306")
	require.NoError(t, err)
	assert.Equal(t, "200-8341", reply.TicketNumber)
}

func TestChatService_NonMaintenancePassThrough(t *testing.T) {
	client := &fakeClient{text: `{"type":"help_request","message":"Here are some examples","examples":[{"title":"Simple","example":"Maintenance for srv-web01 tomorrow 8-10"}]}`}
	svc := newChatService(client)

	reply, err := svc.Respond(context.Background(), "how do I use this?")
	require.NoError(t, err)
	assert.Equal(t, ReplyHelpRequest, reply.Type)
	require.Len(t, reply.Examples, 1)
}

func TestChatService_InvalidRecurrenceBecomesErrorReply(t *testing.T) {
	client := &fakeClient{text: maintenanceReplyJSON(t, func(m map[string]interface{}) {
		m["recurrence_type"] = "weekly"
		m["recurrence_config"] = map[string]interface{}{
			"start_time": 0, "duration": 3600, "dayofweek": 128,
		}
	})}
	svc := newChatService(client)

	reply, err := svc.Respond(context.Background(), "weekly maintenance")
	require.NoError(t, err)
	assert.Equal(t, ReplyError, reply.Type)
	assert.Contains(t, reply.Message, "127")
}

func TestChatService_MissingRecurrenceConfig(t *testing.T) {
	client := &fakeClient{text: maintenanceReplyJSON(t, func(m map[string]interface{}) {
		m["recurrence_type"] = "monthly"
	})}
	svc := newChatService(client)

	reply, err := svc.Respond(context.Background(), "monthly maintenance")
	require.NoError(t, err)
	assert.Equal(t, ReplyError, reply.Type)
}

func TestChatService_MissingWindowFields(t *testing.T) {
	client := &fakeClient{text: maintenanceReplyJSON(t, func(m map[string]interface{}) {
		delete(m, "end_time")
	})}
	svc := newChatService(client)

	reply, err := svc.Respond(context.Background(), "maintenance for srv-web01")
	require.NoError(t, err)
	assert.Equal(t, ReplyError, reply.Type)
}

func TestChatService_GarbledModelOutput(t *testing.T) {
	client := &fakeClient{text: "I will not answer in JSON today."}
	svc := newChatService(client)

	reply, err := svc.Respond(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, ReplyError, reply.Type)
}

// Full HTTP path: httptest server speaking the OpenAI response format →
// llm client → chat service. Guards against mock drift between the provider
// wire format and the reply parsing.
func TestChatService_WithHTTPServer(t *testing.T) {
	replyJSON := maintenanceReplyJSON(t, func(m map[string]interface{}) {
		m["recurrence_type"] = "weekly"
		m["recurrence_config"] = map[string]interface{}{
			"start_time": 18000, "duration": 7200, "dayofweek": 24, "every": 1,
		}
	})

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"model": "gpt-test",
				"choices": []map[string]interface{}{
					{"message": map[string]string{"content": "```json\n" + replyJSON + "\n```"}},
				},
			})
		}))
	}()
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Provider = llm.ProviderOpenAI
	cfg.OpenAIKey = "sk-test"
	cfg.Endpoint = srv.URL
	cfg.MaxRetries = 0

	client, err := llm.NewClient(cfg, llm.NoopObserver{})
	require.NoError(t, err)

	reply, err := NewChatService(client).Respond(context.Background(),
		"weekly maintenance thursdays and fridays 5 to 7 am")
	require.NoError(t, err)

	assert.Equal(t, ReplyMaintenanceRequest, reply.Type)
	assert.Equal(t, recurrence.KindWeekly, reply.RecurrenceType)
	require.NotNil(t, reply.RecurrenceConfig)
	assert.Equal(t, 24, *reply.RecurrenceConfig.DayOfWeek)
}
