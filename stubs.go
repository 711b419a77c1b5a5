package twocaptcha

import "context"

// Placeholder solvers for task types the library does not implement yet.
// They keep the same call shape as the working solvers and fail with
// ErrNotSupported before any network call is made.

// RecaptchaV2Request describes a Google reCAPTCHA V2 challenge.
type RecaptchaV2Request struct {
	WebsiteURL string
	WebsiteKey string
	// Invisible marks the invisible widget variant.
	Invisible bool
	Proxy     *Proxy
}

// RecaptchaV2Solver is not implemented yet.
type RecaptchaV2Solver struct{}

// Solve always returns ErrNotSupported.
func (s *RecaptchaV2Solver) Solve(ctx context.Context, req RecaptchaV2Request) (*Task, error) {
	return nil, ErrNotSupported
}

// FunCaptchaRequest describes an Arkose Labs FunCaptcha challenge.
type FunCaptchaRequest struct {
	WebsiteURL       string
	WebsitePublicKey string
	Proxy            *Proxy
}

// FunCaptchaSolver is not implemented yet.
type FunCaptchaSolver struct{}

// Solve always returns ErrNotSupported.
func (s *FunCaptchaSolver) Solve(ctx context.Context, req FunCaptchaRequest) (*Task, error) {
	return nil, ErrNotSupported
}
