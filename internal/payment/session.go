package payment

import "sync"

// anonymousLabel prefills the provider UI when the profile has no name.
const anonymousLabel = "Guest"

// Outcome is the terminal state of a payment session.
type Outcome int

const (
	// OutcomeCompleted means the provider confirmed the payment.
	OutcomeCompleted Outcome = iota
	// OutcomeDismissed means the user closed the provider UI without paying.
	OutcomeDismissed
)

// CompletionInfo carries the provider-issued identifiers delivered on
// completion. This component does not verify the signature; that is the
// backend's concern.
type CompletionInfo struct {
	PaymentID string
	OrderID   string
	Signature string
}

// Result is the single value a session resolves to.
type Result struct {
	Outcome Outcome
	Payment CompletionInfo
}

// Prefill is the contact block shown in the provider UI.
type Prefill struct {
	Name  string
	Email string
	Phone string
}

// SessionConfig configures the provider-hosted payment UI.
type SessionConfig struct {
	SessionKey  string
	Handle      OrderHandle
	Description string
	Prefill     Prefill
}

// Session models one interaction with the provider-hosted payment UI.
// The provider invokes Complete or Dismiss outside the normal call
// stack; exactly one of them wins and the session resolves once.
type Session struct {
	cfg  SessionConfig
	once sync.Once
	done chan Result
}

// NewSession prepares a session for the given configuration. An empty
// prefill name falls back to a generic label.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Prefill.Name == "" {
		cfg.Prefill.Name = anonymousLabel
	}
	return &Session{cfg: cfg, done: make(chan Result, 1)}
}

// Config returns the configuration handed to the provider UI.
func (s *Session) Config() SessionConfig {
	return s.cfg
}

// Complete resolves the session with the provider-issued identifiers.
// Calls after the first resolution are ignored.
func (s *Session) Complete(info CompletionInfo) {
	s.once.Do(func() {
		s.done <- Result{Outcome: OutcomeCompleted, Payment: info}
	})
}

// Dismiss resolves the session as closed without payment.
func (s *Session) Dismiss() {
	s.once.Do(func() {
		s.done <- Result{Outcome: OutcomeDismissed}
	})
}

// Result yields the session's single terminal value.
func (s *Session) Result() <-chan Result {
	return s.done
}

// Loader tracks the one-time load of the provider's client asset.
// Attempting the load repeatedly is safe; only the first attempt
// performs the fetch and its error is remembered.
type Loader struct {
	once sync.Once
	err  error
}

// Ensure runs load exactly once per Loader lifetime.
func (l *Loader) Ensure(load func() error) error {
	l.once.Do(func() {
		l.err = load()
	})
	return l.err
}
