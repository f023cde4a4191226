// Package client talks to the attempt API over HTTP on behalf of a test
// session running on the student's machine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/model"
	"github.com/lshigami/ExamPortal/internal/session"
)

var _ session.AttemptAPI = (*Client)(nil)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether repeating the same request may succeed.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Conflict reports whether the server refused the request because of the
// attempt's state, e.g. it is already completed or its time is over.
func (e *APIError) Conflict() bool {
	return e.StatusCode == http.StatusConflict
}

type Config struct {
	BaseURL string // e.g. http://localhost:8080/api/v1
	Token   string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) StartAttempt(ctx context.Context, examID uint) (*dto.AttemptDetailDTO, error) {
	var out dto.AttemptDetailDTO
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/exams/%d/attempts", examID), nil, &out); err != nil {
		return nil, fmt.Errorf("start attempt: %w", err)
	}
	return &out, nil
}

func (c *Client) FetchAttempt(ctx context.Context, attemptID uint) (*dto.AttemptDetailDTO, error) {
	var out dto.AttemptDetailDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/attempts/%d", attemptID), nil, &out); err != nil {
		return nil, fmt.Errorf("fetch attempt: %w", err)
	}
	return &out, nil
}

func (c *Client) SaveResponse(ctx context.Context, attemptID, questionID uint, req dto.ResponseUpsertDTO) (*dto.ResponseDTO, error) {
	var out dto.ResponseDTO
	path := fmt.Sprintf("/attempts/%d/responses/%d", attemptID, questionID)
	if err := c.do(ctx, http.MethodPut, path, req, &out); err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}
	return &out, nil
}

func (c *Client) SubmitAttempt(ctx context.Context, attemptID uint, reason model.SubmitReason) (*dto.AttemptDetailDTO, error) {
	var out dto.AttemptDetailDTO
	body := dto.SubmitAttemptDTO{Reason: string(reason)}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/attempts/%d/submit", attemptID), body, &out); err != nil {
		return nil, fmt.Errorf("submit attempt: %w", err)
	}
	return &out, nil
}

func (c *Client) GetResult(ctx context.Context, attemptID uint) (*dto.ResultDTO, error) {
	var out dto.ResultDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/attempts/%d/result", attemptID), nil, &out); err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set(dto.RequestIDHeader, uuid.NewString())

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		var apiErr dto.ErrorResponse
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
		if json.Unmarshal(raw, &apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: res.StatusCode, Message: apiErr.Message}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
