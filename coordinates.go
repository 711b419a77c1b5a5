package twocaptcha

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
)

// CoordinatesRequest describes an image captcha solved by clicking points
// on the image ("click the apples" style). The service offers no
// proxy-routed variant for this type.
type CoordinatesRequest struct {
	// Body is the captcha image, base64-encoded or as a data URI. Required.
	Body string
	// Comment is an optional text instruction for the worker.
	Comment string
	// ImgInstructions is an optional instruction image, base64-encoded.
	ImgInstructions string
	// MinClicks and MaxClicks bound the number of clicks when nonzero.
	MinClicks int
	MaxClicks int
}

// Coordinate is one clicked point on the captcha image.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CoordinatesSolution is the list of points the worker clicked.
type CoordinatesSolution struct {
	Coordinates []Coordinate `json:"coordinates"`
}

// CoordinatesTask is a completed coordinates task with its narrowed solution.
type CoordinatesTask struct {
	Task
	Solution *CoordinatesSolution
}

// CoordinatesSolver solves image captchas that require clicking coordinates.
type CoordinatesSolver struct {
	client *Client
}

// Solve submits the image and waits for the clicked coordinates.
func (s *CoordinatesSolver) Solve(ctx context.Context, req CoordinatesRequest) (*CoordinatesTask, error) {
	if req.Body == "" {
		return nil, fmt.Errorf("twocaptcha: coordinates: image body is required")
	}

	payload := map[string]any{"body": req.Body}
	if req.Comment != "" {
		payload["comment"] = req.Comment
	}
	if req.ImgInstructions != "" {
		payload["imgInstructions"] = req.ImgInstructions
	}
	if req.MinClicks > 0 {
		payload["minClicks"] = req.MinClicks
	}
	if req.MaxClicks > 0 {
		payload["maxClicks"] = req.MaxClicks
	}

	rt, err := s.client.CreateTask(ctx, TypeCoordinates, payload)
	if err != nil {
		return nil, err
	}
	done, err := rt.WaitUntilDone(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return newCoordinatesTask(done)
}

// newCoordinatesTask narrows a generic completed task into a CoordinatesTask.
func newCoordinatesTask(t *Task) (*CoordinatesTask, error) {
	ct := &CoordinatesTask{Task: *t}
	if err := sonic.Unmarshal(t.Solution, &ct.Solution); err != nil {
		return nil, fmt.Errorf("twocaptcha: decode coordinates solution: %w", err)
	}
	if ct.Solution == nil || len(ct.Solution.Coordinates) == 0 {
		return nil, fmt.Errorf("twocaptcha: coordinates task %d ready but no coordinates returned", t.ID)
	}
	return ct, nil
}
