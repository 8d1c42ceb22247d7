// Package clickup implements the minimal ClickUp v2 API surface the bot needs.
package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskcup/internal/logger"
)

const defaultBaseURL = "https://api.clickup.com"

// Config declares client settings.
type Config struct {
	Token   string
	BaseURL string
	// Timeout bounds one create-task call; 0 -> 30s.
	Timeout time.Duration
}

// Client issues task-creation requests against the ClickUp API.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient builds a ClickUp client with a tuned HTTP transport.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		token:   cfg.Token,
		baseURL: base,
		http:    newHTTPClient(timeout),
	}
}

// CreateTaskRequest carries the fields of one create-task call.
// Nil pointers mean the field is omitted from the API payload entirely.
type CreateTaskRequest struct {
	ListID      string
	Name        string
	Description string
	DueDateMS   *int64
	Priority    *int
}

// Task is the created task identity returned by the API.
type Task struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// APIError is a non-success response from ClickUp with its human-readable message.
type APIError struct {
	Status  int
	Message string
	ECode   string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("clickup: %s (%d)", e.Message, e.Status)
	}
	return fmt.Sprintf("clickup: unexpected status %d", e.Status)
}

type createTaskBody struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DueDate     *int64 `json:"due_date,omitempty"`
	Priority    *int   `json:"priority,omitempty"`
}

type apiErrorBody struct {
	Err   string `json:"err"`
	ECode string `json:"ECODE"`
}

// CreateTask submits one task. No retries: at most one delivery attempt.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error) {
	if req.ListID == "" {
		return Task{}, fmt.Errorf("clickup: empty list id")
	}

	body, err := json.Marshal(createTaskBody{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDateMS,
		Priority:    req.Priority,
	})
	if err != nil {
		return Task{}, fmt.Errorf("clickup: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v2/list/%s/task", c.baseURL, url.PathEscape(req.ListID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Task{}, fmt.Errorf("clickup: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Error(ctx, "clickup", "task.create",
			slog.String("status", "fail"),
			slog.String("list_id", req.ListID),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return Task{}, fmt.Errorf("clickup: create task: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Task{}, fmt.Errorf("clickup: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb apiErrorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Err
			apiErr.ECode = eb.ECode
		}
		logger.Error(ctx, "clickup", "task.create",
			slog.String("status", "fail"),
			slog.String("list_id", req.ListID),
			slog.Int("http_code", resp.StatusCode),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", logger.SanitizeLimit(apiErr.Error(), 256)),
		)
		return Task{}, apiErr
	}

	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		return Task{}, fmt.Errorf("clickup: decode response: %w", err)
	}

	logger.Info(ctx, "clickup", "task.create",
		slog.String("status", "ok"),
		slog.String("list_id", req.ListID),
		slog.String("task_id", task.ID),
		slog.Duration("duration", logger.Took(start)),
	)
	return task, nil
}
