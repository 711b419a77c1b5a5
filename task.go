package twocaptcha

import (
	"bytes"
	"encoding/json"
)

// TaskType identifies a captcha task type on the 2Captcha API. Proxy-routed
// and proxyless variants are distinct types on the wire.
type TaskType string

const (
	TypeTurnstile            TaskType = "TurnstileTask"
	TypeTurnstileProxyless   TaskType = "TurnstileTaskProxyless"
	TypeCoordinates          TaskType = "CoordinatesTask"
	TypeRecaptchaV2          TaskType = "RecaptchaV2Task"
	TypeRecaptchaV2Proxyless TaskType = "RecaptchaV2TaskProxyless"
	TypeFunCaptcha           TaskType = "FunCaptchaTask"
	TypeFunCaptchaProxyless  TaskType = "FunCaptchaTaskProxyless"
)

// Status is the server-reported lifecycle state of a task. Use the exported
// constants instead of raw strings.
type Status string

const (
	// StatusProcessing means workers are still solving the captcha.
	StatusProcessing Status = "processing"
	// StatusReady means the captcha is solved and the solution is populated.
	StatusReady Status = "ready"
)

// Task is one captcha-solving request tracked by a server-assigned id.
// It mirrors the getTaskResult response body; the error triplet is set only
// when the task failed on the service side.
type Task struct {
	// ID is the server-assigned task id. It is not echoed by getTaskResult
	// and is filled in by the client from the requested id.
	ID int64 `json:"-"`

	ErrorID          int    `json:"errorId"`
	ErrorCode        string `json:"errorCode,omitempty"`
	ErrorDescription string `json:"errorDescription,omitempty"`

	Status Status `json:"status,omitempty"`

	// Solution is the raw captcha-type-specific payload. Solver wrappers
	// narrow it into a typed structure.
	Solution json.RawMessage `json:"solution,omitempty"`

	// Result metadata reported by the service.
	Cost       string `json:"cost,omitempty"`
	IP         string `json:"ip,omitempty"`
	CreateTime int64  `json:"createTime,omitempty"`
	EndTime    int64  `json:"endTime,omitempty"`
	SolveCount int    `json:"solveCount,omitempty"`
}

// IsReady reports whether the task is solved and carries a solution.
func (t *Task) IsReady() bool {
	return t.Status == StatusReady && t.hasSolution()
}

// IsProcessing reports whether the task is still being solved.
func (t *Task) IsProcessing() bool {
	return t.Status == StatusProcessing
}

func (t *Task) hasSolution() bool {
	return len(t.Solution) > 0 && !bytes.Equal(t.Solution, []byte("null"))
}

// serviceErr returns the ServiceError for a failed response, or nil.
func (t *Task) serviceErr() error {
	if t.ErrorID == 0 {
		return nil
	}
	return serviceError(t.ErrorID, t.ErrorCode, t.ErrorDescription)
}
