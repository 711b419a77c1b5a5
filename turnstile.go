package twocaptcha

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
)

// TurnstileRequest describes a Cloudflare Turnstile challenge.
type TurnstileRequest struct {
	// WebsiteURL is the full URL of the page with the challenge. Required.
	WebsiteURL string
	// WebsiteKey is the Turnstile sitekey. Required.
	WebsiteKey string
	// Action is the optional action value from the widget callback.
	Action string
	// Data is the optional data value (cData) from the widget callback.
	Data string
	// PageData is the optional chlPageData value, used by Cloudflare
	// Challenge pages.
	PageData string
	// Proxy, when set, switches the task to the proxy-routed variant.
	Proxy *Proxy
}

// TurnstileSolution is the solved Turnstile payload.
type TurnstileSolution struct {
	Token     string `json:"token"`
	UserAgent string `json:"userAgent"`
}

// TurnstileTask is a completed Turnstile task with its narrowed solution.
type TurnstileTask struct {
	Task
	Solution *TurnstileSolution
}

// TurnstileSolver solves Cloudflare Turnstile captchas.
type TurnstileSolver struct {
	client *Client
}

// Solve submits the challenge and waits for the solved token. Zero
// pollInterval/timeout on the client config mean the library defaults.
func (s *TurnstileSolver) Solve(ctx context.Context, req TurnstileRequest) (*TurnstileTask, error) {
	if req.WebsiteURL == "" || req.WebsiteKey == "" {
		return nil, fmt.Errorf("twocaptcha: turnstile: websiteURL and websiteKey are required")
	}

	payload := map[string]any{
		"websiteURL": req.WebsiteURL,
		"websiteKey": req.WebsiteKey,
	}
	if req.Action != "" {
		payload["action"] = req.Action
	}
	if req.Data != "" {
		payload["data"] = req.Data
	}
	if req.PageData != "" {
		payload["pagedata"] = req.PageData
	}

	typ := TypeTurnstileProxyless
	if req.Proxy != nil {
		typ = TypeTurnstile
		req.Proxy.apply(payload)
	}

	rt, err := s.client.CreateTask(ctx, typ, payload)
	if err != nil {
		return nil, err
	}
	done, err := rt.WaitUntilDone(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return newTurnstileTask(done)
}

// SolveToken is a shortcut returning only the solved token.
func (s *TurnstileSolver) SolveToken(ctx context.Context, websiteURL, websiteKey string) (string, error) {
	task, err := s.Solve(ctx, TurnstileRequest{WebsiteURL: websiteURL, WebsiteKey: websiteKey})
	if err != nil {
		return "", err
	}
	return task.Solution.Token, nil
}

// newTurnstileTask narrows a generic completed task into a TurnstileTask.
func newTurnstileTask(t *Task) (*TurnstileTask, error) {
	tt := &TurnstileTask{Task: *t}
	if err := sonic.Unmarshal(t.Solution, &tt.Solution); err != nil {
		return nil, fmt.Errorf("twocaptcha: decode turnstile solution: %w", err)
	}
	if tt.Solution == nil || tt.Solution.Token == "" {
		return nil, fmt.Errorf("twocaptcha: turnstile task %d ready but token is empty", t.ID)
	}
	return tt, nil
}
