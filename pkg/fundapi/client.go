// Package fundapi provides a client for the external charity-fund API.
// Raw HTTP calls, no SDK.
package fundapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNetwork wraps transport-level failures so callers can tell them apart
// from HTTP-status errors.
var ErrNetwork = errors.New("fundapi: network error")

// APIError is a non-success HTTP response from the fund API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fundapi: status %d: %s", e.StatusCode, e.Message)
}

// Program is one charity program exposed by the fund API.
type Program struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Goal        int64  `json:"goal"`
	Collected   int64  `json:"collected"`
}

// envelope is the fund API's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

// Client fetches programs from the external fund API.
type Client interface {
	GetPrograms(ctx context.Context) ([]Program, error)
	GetProgramByID(ctx context.Context, id string) (*Program, error)
}

// RealClient is the HTTP implementation of Client. The access token rides as
// a query parameter on every call.
type RealClient struct {
	BaseURL    string
	Token      string
	httpClient *http.Client
}

// NewClient creates a RealClient.
func NewClient(baseURL, token string) *RealClient {
	return &RealClient{
		BaseURL:    baseURL,
		Token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// get performs a token-authenticated GET and returns the envelope's data.
// An empty successful body decodes as empty data rather than failing.
func (c *RealClient) get(ctx context.Context, path string) (json.RawMessage, error) {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("access-token", c.Token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(raw)}
		var env envelope
		if json.Unmarshal(raw, &env) == nil && !env.Success {
			apiErr.Message = string(env.Data)
		}
		return nil, apiErr
	}

	if len(raw) == 0 {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("fundapi: decode: %w", err)
	}
	return env.Data, nil
}

func (c *RealClient) GetPrograms(ctx context.Context) ([]Program, error) {
	data, err := c.get(ctx, "/programs")
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []Program{}, nil
	}
	var programs []Program
	if err := json.Unmarshal(data, &programs); err != nil {
		return nil, fmt.Errorf("fundapi: decode programs: %w", err)
	}
	return programs, nil
}

func (c *RealClient) GetProgramByID(ctx context.Context, id string) (*Program, error) {
	data, err := c.get(ctx, "/program/by-id/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var program Program
	if err := json.Unmarshal(data, &program); err != nil {
		return nil, fmt.Errorf("fundapi: decode program: %w", err)
	}
	return &program, nil
}
