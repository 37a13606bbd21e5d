package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"lolbot/pkg/messages"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
)

// StatusError carries the upstream status code and message of a non-2xx response.
// It is decided once here and never re-inferred from the payload downstream.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("riot api status %d: %s", e.Code, e.Message)
}

// Shape of the error body returned by the Riot API.
type riotErrorBody struct {
	Status struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	} `json:"status"`
}

// Executor issues single-attempt GET requests against the Riot API.
// The API key travels as a query parameter on every request, that is how the
// upstream expects it and must not be moved into a header.
type Executor struct {
	apiKey string
	client *http.Client
}

// Create a executor with a shared HTTP client.
func NewExecutor(apiKey string) *Executor {
	return &Executor{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Get does a single GET request with the api_key parameter attached.
// The body and status code are always returned when the transport succeeds.
// Non-2xx responses additionally return a *StatusError, transport failures
// propagate as-is. No retry, no backoff.
func (e *Executor) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, int, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", e.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		log.Errorf(messages.RequestFailedMsg, rawURL)
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Errorf(messages.BadStatusCodeMsg, resp.StatusCode, rawURL)
		return body, resp.StatusCode, parseStatusError(body, resp.StatusCode)
	}

	return body, resp.StatusCode, nil
}

// PlainGet does a unauthenticated GET, used for the DDragon assets.
func PlainGet(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Errorf(messages.RequestFailedMsg, rawURL)
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Errorf(messages.BadStatusCodeMsg, resp.StatusCode, rawURL)
		return body, resp.StatusCode, parseStatusError(body, resp.StatusCode)
	}

	return body, resp.StatusCode, nil
}

// Build the typed error from the upstream error body.
// The body message is optional, some endpoints return an empty body on failure.
func parseStatusError(body []byte, statusCode int) *StatusError {
	var parsed riotErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Status.Message != "" {
		return &StatusError{Code: statusCode, Message: parsed.Status.Message}
	}
	return &StatusError{Code: statusCode, Message: http.StatusText(statusCode)}
}
