package domain

import "sync"

// Session is the per-browser mutable application state. Every presentational
// collaborator reads and writes it through the named operations below, never
// through ad-hoc field writes, so the atomicity rules of the submission flow
// hold under a concurrent HTTP server.
type Session struct {
	mu sync.Mutex

	ID              string
	CurrentStep     Step
	LoggedIn        bool
	UserEmail       string
	UserName        string
	SelectedProfile string // raw selector value, e.g. "gig-worker"
	Form            FormData

	CreditScore  *float64
	RiskBand     string
	TopFactors   []Factor
	ScoreHistory []ScoreHistoryEntry

	inFlight bool
}

// NewSession returns a session in its initial state.
func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		CurrentStep: StepLanding,
	}
}

// Snapshot is a copy of the session state safe to hand to a JSON encoder.
type Snapshot struct {
	CurrentStep     Step                `json:"currentStep"`
	LoggedIn        bool                `json:"isLoggedIn"`
	UserName        string              `json:"userName"`
	SelectedProfile string              `json:"selectedProfile,omitempty"`
	Form            FormData            `json:"formData"`
	CreditScore     *float64            `json:"creditScore"`
	RiskBand        string              `json:"riskBand,omitempty"`
	TopFactors      []Factor            `json:"topFactors,omitempty"`
	ScoreHistory    []ScoreHistoryEntry `json:"scoreHistory"`
}

// Snapshot copies the current state. The guard has already run on every
// mutation, so the snapshot never exposes a protected step to a logged-out
// session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]ScoreHistoryEntry, len(s.ScoreHistory))
	copy(history, s.ScoreHistory)

	factors := make([]Factor, len(s.TopFactors))
	copy(factors, s.TopFactors)

	var score *float64
	if s.CreditScore != nil {
		v := *s.CreditScore
		score = &v
	}

	return Snapshot{
		CurrentStep:     s.CurrentStep,
		LoggedIn:        s.LoggedIn,
		UserName:        s.UserName,
		SelectedProfile: s.SelectedProfile,
		Form:            s.Form,
		CreditScore:     score,
		RiskBand:        s.RiskBand,
		TopFactors:      factors,
		ScoreHistory:    history,
	}
}

// Navigate moves the session to the step the guard resolves for the request
// and returns it.
func (s *Session) Navigate(requested Step, resolve func(loggedIn bool, requested Step) Step) Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	actual := resolve(s.LoggedIn, requested)
	s.CurrentStep = actual
	return actual
}

// Login marks the session authenticated and advances to next. Called by
// sign-up (profile-select) and sign-in (dashboard).
func (s *Session) Login(user *User, next Step) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.LoggedIn = true
	s.UserEmail = user.Email
	s.UserName = user.DisplayName
	s.CurrentStep = next
}

// Logout resets the session to its initial state. The score history is the
// one carve-out: it is append-only and survives until the session itself
// expires. The latest score and risk band do not survive.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.LoggedIn = false
	s.UserEmail = ""
	s.UserName = ""
	s.SelectedProfile = ""
	s.Form = FormData{}
	s.CreditScore = nil
	s.RiskBand = ""
	s.TopFactors = nil
	s.CurrentStep = StepLanding
}

// Email returns the logged-in user's email, empty when logged out.
func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UserEmail
}

// SetDisplayName updates the rendered user name.
func (s *Session) SetDisplayName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UserName = name
}

// SelectProfile records the chosen borrower profile.
func (s *Session) SelectProfile(profile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SelectedProfile = profile
}

// UpdateForm merges field writes into the form state.
func (s *Session) UpdateForm(fields map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Form.Apply(fields)
}

// BeginSubmission marks a scoring request in flight and returns a copy of
// the form plus the selected profile. It fails if the session is not logged
// in or a submission is already pending, which keeps history appends from
// racing.
func (s *Session) BeginSubmission() (FormData, ProfileType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.LoggedIn {
		return FormData{}, "", &ErrUnauthorized{Message: "login required"}
	}
	if s.inFlight {
		return FormData{}, "", &ErrInFlight{}
	}
	s.inFlight = true
	return s.Form, ProfileFromForm(s.SelectedProfile), nil
}

// EndSubmission clears the in-flight flag without touching score state.
// Called on failure; the step, score and history are left exactly as they
// were.
func (s *Session) EndSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// ApplyScore commits a successful scoring outcome: latest score, risk band
// and factors are replaced, a history entry is prepended, and the session
// advances to the dashboard. All four pieces change together under the lock.
//
// The login state is re-checked under the same lock: if the user logged out
// while the scoring call was in flight, the late result is discarded, only
// the in-flight flag clears, and ApplyScore reports false. Logout cleared
// the score state and a logged-out session must never land on a protected
// step, so the commit cannot proceed.
func (s *Session) ApplyScore(result *ScoreResult, date string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	if !s.LoggedIn {
		return false
	}

	score := result.AlternativeCreditScore
	s.CreditScore = &score
	s.RiskBand = result.RiskBand
	s.TopFactors = result.TopFactors
	s.ScoreHistory = append([]ScoreHistoryEntry{{
		Date:     date,
		Score:    result.AlternativeCreditScore,
		RiskBand: result.RiskBand,
	}}, s.ScoreHistory...)
	s.CurrentStep = StepDashboard
	return true
}
