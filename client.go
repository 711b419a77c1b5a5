// Package twocaptcha is a client for the 2Captcha captcha-solving API (v2).
//
// The client creates solving tasks, polls for completion, and exposes
// typed per-captcha-type solvers. Failures surface as *TransportError
// (HTTP/network level) or *ServiceError (in-body error code).
package twocaptcha

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Client is the top-level 2Captcha API client. Solver instances for the
// supported captcha types hang off the client as fields.
type Client struct {
	session *session
	cfg     ClientConfig

	// Turnstile solves Cloudflare Turnstile challenges.
	Turnstile *TurnstileSolver
	// Coordinates solves image captchas that require clicking coordinates.
	Coordinates *CoordinatesSolver
	// RecaptchaV2 is a placeholder; Solve always returns ErrNotSupported.
	RecaptchaV2 *RecaptchaV2Solver
	// FunCaptcha is a placeholder; Solve always returns ErrNotSupported.
	FunCaptcha *FunCaptchaSolver
}

// NewClient creates a 2Captcha client. cfg.APIKey is required; every other
// field has a default.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("twocaptcha: api key is required")
	}
	cfg.defaults()

	c := &Client{
		session: newSession(cfg),
		cfg:     cfg,
	}
	c.Turnstile = &TurnstileSolver{client: c}
	c.Coordinates = &CoordinatesSolver{client: c}
	c.RecaptchaV2 = &RecaptchaV2Solver{}
	c.FunCaptcha = &FunCaptchaSolver{}
	return c, nil
}

// CreateTask submits a task of the given type to /createTask and returns a
// RunningTask handle seeded with the assigned id. The payload map is not
// mutated; task creation is billable and is never retried internally.
func (c *Client) CreateTask(ctx context.Context, typ TaskType, payload map[string]any) (*RunningTask, error) {
	task := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		task[k] = v
	}
	task["type"] = string(typ)

	var resp struct {
		ErrorID          int    `json:"errorId"`
		ErrorCode        string `json:"errorCode"`
		ErrorDescription string `json:"errorDescription"`
		TaskID           int64  `json:"taskId"`
	}
	if err := c.session.post(ctx, "/createTask", map[string]any{"task": task}, &resp); err != nil {
		return nil, fmt.Errorf("createTask: %w", err)
	}
	if resp.ErrorID != 0 {
		return nil, serviceError(resp.ErrorID, resp.ErrorCode, resp.ErrorDescription)
	}
	if resp.TaskID == 0 {
		return nil, fmt.Errorf("twocaptcha: createTask returned empty taskId")
	}

	slog.Info("captcha task created", slog.Int64("task_id", resp.TaskID), slog.String("type", string(typ)))

	return &RunningTask{
		client: c,
		task:   Task{ID: resp.TaskID, Status: StatusProcessing},
	}, nil
}

// GetTaskResult fetches the current snapshot of a task by id. A nonzero
// in-body error code comes back as *ServiceError with no Task.
func (c *Client) GetTaskResult(ctx context.Context, taskID int64) (*Task, error) {
	var task Task
	if err := c.session.post(ctx, "/getTaskResult", map[string]any{"taskId": taskID}, &task); err != nil {
		return nil, fmt.Errorf("getTaskResult: %w", err)
	}
	if err := task.serviceErr(); err != nil {
		return nil, err
	}
	task.ID = taskID
	return &task, nil
}

// GetBalance returns the account balance in USD.
func (c *Client) GetBalance(ctx context.Context) (float64, error) {
	var resp struct {
		ErrorID          int     `json:"errorId"`
		ErrorCode        string  `json:"errorCode"`
		ErrorDescription string  `json:"errorDescription"`
		Balance          float64 `json:"balance"`
	}
	if err := c.session.post(ctx, "/getBalance", nil, &resp); err != nil {
		return 0, fmt.Errorf("getBalance: %w", err)
	}
	if resp.ErrorID != 0 {
		return 0, serviceError(resp.ErrorID, resp.ErrorCode, resp.ErrorDescription)
	}
	return resp.Balance, nil
}

// Close releases the shared transport. In-flight tasks keep running on the
// server; their handles become unusable.
func (c *Client) Close() {
	c.session.close()
}
