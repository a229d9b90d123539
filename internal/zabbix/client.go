package zabbix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client talks to the Zabbix 7.2 JSON-RPC API using bearer-token auth.
type Client struct {
	url   string
	token string
	http  *http.Client
	log   *zap.Logger
}

// NewClient creates a Client for the given API endpoint.
func NewClient(url, token string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		url:   url,
		token: token,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		log: log,
	}
}

// APIError is a JSON-RPC error payload returned by Zabbix.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

func (e *APIError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("zabbix api error %d: %s (%s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("zabbix api error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      int         `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *APIError       `json:"error"`
}

// call performs one JSON-RPC request and unmarshals its result into out.
// A populated error object in the envelope is returned as *APIError.
func (c *Client) call(ctx context.Context, method string, params, out interface{}) error {
	payload := rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("zabbix call failed", zap.String("method", method), zap.Error(err))
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d: %s", method, resp.StatusCode, string(body))
	}

	var envelope rpcResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}
	if envelope.Error != nil {
		c.log.Warn("zabbix api error",
			zap.String("method", method),
			zap.Int("code", envelope.Error.Code),
			zap.String("data", envelope.Error.Data))
		return envelope.Error
	}

	c.log.Debug("zabbix call completed",
		zap.String("method", method),
		zap.Duration("elapsed", time.Since(start)))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decoding %s result: %w", method, err)
	}
	return nil
}

// TestConnection verifies the endpoint and token by fetching one user.
func (c *Client) TestConnection(ctx context.Context) error {
	var users []User
	return c.call(ctx, "user.get", map[string]interface{}{
		"output": []string{"userid", "username"},
		"limit":  1,
	}, &users)
}

// User is the subset of the Zabbix user object the assistant cares about.
type User struct {
	UserID   string `json:"userid"`
	Username string `json:"username"`
}

// ValidateUser reports whether the given user ID exists in Zabbix. Used to
// gate chat and create calls on an authenticated Zabbix session.
func (c *Client) ValidateUser(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	var users []User
	err := c.call(ctx, "user.get", map[string]interface{}{
		"userids": []string{userID},
		"output":  []string{"userid", "username"},
	}, &users)
	if err != nil {
		return false, err
	}
	return len(users) > 0, nil
}
