package twocaptcha

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned by WaitUntilDone when the deadline elapses while
// the task is still processing. The task itself may still complete on the
// server; the caller can keep the RunningTask and poll again.
var ErrTimeout = errors.New("twocaptcha: timed out waiting for task result")

// ErrNotSupported is returned by solver types that are not implemented yet.
var ErrNotSupported = errors.New("twocaptcha: captcha type not supported yet")

// TransportError is an HTTP-level failure: a non-2xx status from the API
// host, or a connectivity error before any response was received.
type TransportError struct {
	StatusCode int    // HTTP status, 0 when the request never completed
	Body       string // truncated response body, empty on connectivity errors
	Err        error  // underlying network error, nil on non-2xx responses
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return "twocaptcha: request failed: " + e.Err.Error()
	}
	return fmt.Sprintf("twocaptcha: HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a logical failure reported inside an HTTP-200 body via a
// nonzero errorId, e.g. zero balance or an unsolvable captcha.
type ServiceError struct {
	Code        int    // numeric errorId from the response
	Name        string // symbolic errorCode, e.g. ERROR_ZERO_BALANCE
	Description string // human-readable message
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("twocaptcha: api error %d (%s): %s", e.Code, e.Name, e.Description)
}

// errorText maps 2Captcha errorId values to human-readable messages, used
// when the response omits errorDescription.
var errorText = map[int]string{
	1:   "the api key does not exist",
	2:   "no solving slot is available, retry later",
	3:   "image size is less than 100 bytes",
	4:   "image size is more than 100 kB",
	10:  "account balance is zero",
	11:  "request is not allowed from this ip",
	12:  "workers could not solve the captcha",
	21:  "ip address is blocked",
	22:  "task with this id does not exist or has expired",
	23:  "this task type is not supported by the service",
	55:  "account is suspended",
	130: "task contains missing or malformed parameters",
	134: "imgInstructions image is malformed",
	142: "proxy did not respond or rejected the connection",
}

// serviceError builds a ServiceError from the raw error triplet of a
// response body, filling the description from errorText when absent.
func serviceError(id int, name, description string) *ServiceError {
	if description == "" {
		description = errorText[id]
	}
	return &ServiceError{Code: id, Name: name, Description: description}
}
