package domain

// ============================================================
// Auth / session — request and response types
// (matches the frontend API contract)
// ============================================================

// SessionResponse is the body for 201 from POST /v1/session.
type SessionResponse struct {
	Token string `json:"token"`
}

// SignUpRequest is the body for POST /v1/auth/signup.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the body for POST /v1/auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by sign-up, sign-in and logout: the user name as
// rendered and the step the workflow advanced to.
type AuthResponse struct {
	UserName    string `json:"userName,omitempty"`
	CurrentStep Step   `json:"currentStep"`
}

// NavigateRequest is the body for POST /v1/session/navigate.
type NavigateRequest struct {
	Step string `json:"step"`
}

// NavigateResponse carries the step actually reached after the guard ran.
type NavigateResponse struct {
	CurrentStep Step `json:"currentStep"`
}

// SelectProfileRequest is the body for PUT /v1/session/profile.
type SelectProfileRequest struct {
	Profile string `json:"profile"`
}

// UpdateDisplayNameRequest is the body for PUT /v1/auth/profile.
type UpdateDisplayNameRequest struct {
	DisplayName string `json:"displayName"`
}

// FormPatchRequest is the body for PATCH /v1/session/form.
type FormPatchRequest struct {
	Fields map[string]string `json:"fields"`
}

// ScoringMetrics is the JSON snapshot served by GET /v1/metrics/scoring.
type ScoringMetrics struct {
	TotalSubmissions int64   `json:"totalSubmissions"`
	ErrorRate        float64 `json:"errorRate"`
	AvgScore         float64 `json:"avgScore"`
	ActiveSessions   int64   `json:"activeSessions"`
	Period           string  `json:"period"`
}
