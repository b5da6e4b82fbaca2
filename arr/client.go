package arr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
)

const (
	manualImportEndpoint = "/manualimport"
	commandEndpoint      = "/command"
)

// Client talks to the manual import endpoints of a Sonarr or Radarr server
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient creates a new arr client. No request is made until a method is called.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: arr URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: arr API key is required", ErrInvalidConfig)
	}

	options := clientOptions{
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = starr.New(apiKey, baseURL, options.timeout).Client
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		userAgent:  options.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// doRequest performs an authenticated request and returns the body when the
// response carries wantStatus.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, payload any, wantStatus int) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/api/v3%s", c.baseURL, endpoint)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("Making arr API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return nil, &APIError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

// GetManualImport lists the files in folder that the server would import.
// Candidates are returned in server order.
func (c *Client) GetManualImport(ctx context.Context, folder string, filterExistingFiles bool) ([]ImportCandidate, error) {
	params := url.Values{}
	params.Set("folder", folder)
	params.Set("filterExistingFiles", strconv.FormatBool(filterExistingFiles))

	body, err := c.doRequest(ctx, http.MethodGet, manualImportEndpoint, params, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var candidates []ImportCandidate
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse manual import response: %w", err)
	}

	c.logger.Debug().
		Str("folder", folder).
		Int("count", len(candidates)).
		Msg("Retrieved manual import candidates")

	return candidates, nil
}

// SendManualImport submits req to the command endpoint. The server answers
// 201 Created when the command was queued.
func (c *Client) SendManualImport(ctx context.Context, req *ImportRequest) (*CommandResponse, error) {
	body, err := c.doRequest(ctx, http.MethodPost, commandEndpoint, nil, req, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Bytes("response", body).Msg("Manual import command accepted")

	var resp CommandResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse command response: %w", err)
	}

	return &resp, nil
}
