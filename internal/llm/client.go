package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// GenerateRequest holds the parameters for a generation call.
type GenerateRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses the config default
	MaxTokens    *int     // nil uses the config default
}

// GenerateResponse holds the result of a generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client provides access to a language model for text generation.
type Client interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the backend is reachable with the
	// configured credentials.
	Available(ctx context.Context) bool
}

// NewClient builds a Client for the configured provider.
func NewClient(cfg Config, observer Observer) (Client, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.APIKey() == "" {
		return nil, fmt.Errorf("%w: missing API key for provider %q", ErrProviderUnavailable, cfg.Provider)
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return &openAIClient{cfg: cfg, http: httpClient, observer: observer}, nil
	case ProviderGemini:
		return &geminiClient{cfg: cfg, http: httpClient, observer: observer}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", ErrProviderUnavailable, cfg.Provider)
	}
}

// generate runs the shared timeout/retry loop around a provider's single-shot
// request function. It never retries after context cancellation, since the
// deadline covers the whole call.
func generate(ctx context.Context, cfg Config, observer Observer, req GenerateRequest,
	do func(ctx context.Context, req GenerateRequest) (string, error)) (*GenerateResponse, error) {

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 1 + cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		text, err := do(ctx, req)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			observer.OnCallComplete(CallEvent{
				Provider:  cfg.Provider,
				Model:     cfg.Model(),
				LatencyMs: latency,
				Success:   true,
			})
			return &GenerateResponse{Text: text, Model: cfg.Model(), LatencyMs: latency}, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	observer.OnCallComplete(CallEvent{
		Provider:  cfg.Provider,
		Model:     cfg.Model(),
		LatencyMs: latency,
		Success:   false,
		ErrorCode: errorCode(ctx, lastErr),
	})

	if ctx.Err() != nil {
		return nil, ErrTimeout
	}
	if isConnectionError(lastErr) {
		return nil, ErrProviderUnavailable
	}
	return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func effectiveTemperature(cfg Config, req GenerateRequest) float64 {
	if req.Temperature != nil {
		return *req.Temperature
	}
	return cfg.Temperature
}

func effectiveMaxTokens(cfg Config, req GenerateRequest) int {
	if req.MaxTokens != nil {
		return *req.MaxTokens
	}
	return cfg.MaxTokens
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return "TIMEOUT"
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY_RESPONSE"
	case isConnectionError(err):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
