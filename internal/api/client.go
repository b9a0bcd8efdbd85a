package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	m "smashers.dev/pkg/sitegen/internal/model"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:3000/api"

const maxBodyBytes = 4 << 20

// Pagination is attached to list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type envelope[T any] struct {
	Success    bool        `json:"success"`
	Data       T           `json:"data"`
	Error      *wireError  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Client calls the upstream API. Every call is bounded by its context.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Memberships lists the membership catalogue.
func (c *Client) Memberships(ctx context.Context) ([]m.Membership, error) {
	return get[[]m.Membership](ctx, c, "/memberships", nil)
}

// Membership fetches one membership by id.
func (c *Client) Membership(ctx context.Context, id int) (m.Membership, error) {
	return get[m.Membership](ctx, c, "/memberships/"+strconv.Itoa(id), nil)
}

// Sessions lists the training sessions of a day (YYYY-MM-DD).
func (c *Client) Sessions(ctx context.Context, date string) ([]m.Session, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}

	return get[[]m.Session](ctx, c, "/sessions", params)
}

// Locations lists the halls.
func (c *Client) Locations(ctx context.Context) ([]m.Location, error) {
	return get[[]m.Location](ctx, c, "/locations", nil)
}

func get[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (T, error) {
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("build request: %w", err)
	}

	return do[T](c, req)
}

func do[T any](c *Client, req *http.Request) (T, error) {
	var zero T

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("API request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return zero, networkError(err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return zero, networkError(err)
	}

	var env envelope[T]

	decodeErr := json.Unmarshal(body, &env)
	if decodeErr == nil && env.Error != nil && (!env.Success || resp.StatusCode >= http.StatusBadRequest) {
		return zero, classify(resp.StatusCode, env.Error)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return zero, httpError(resp.StatusCode)
	}

	if decodeErr != nil {
		return zero, networkError(fmt.Errorf("decode response: %w", decodeErr))
	}

	if !env.Success {
		return zero, &Error{Kind: KindUnknown, Status: resp.StatusCode, Message: "request was not successful"}
	}

	return env.Data, nil
}
