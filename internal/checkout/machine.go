package checkout

import (
	"sync"

	"github.com/CodeX-266/storefront/internal/cart"
	"github.com/CodeX-266/storefront/internal/domain"
)

// Step is a stage of the checkout panel.
type Step int

const (
	StepCart Step = iota
	StepShipping
	StepReview
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepCart:
		return "cart"
	case StepShipping:
		return "shipping"
	case StepReview:
		return "review"
	case StepConfirm:
		return "confirm"
	}
	return "unknown"
}

// Shipping is the draft recipient block collected at the shipping step.
type Shipping struct {
	Name    string
	Phone   string
	Address domain.Address
}

// Complete reports whether all six shipping fields are populated.
// Presence is the only validation; formats are not checked.
func (s Shipping) Complete() bool {
	return s.Name != "" && s.Phone != "" && s.Address.Complete()
}

// Machine is the checkout step machine. Forward moves are gated on data
// completeness; backward moves are always allowed. While a placement or
// payment operation is in flight all navigation is rejected, which is
// the sole guard against double submission.
type Machine struct {
	mu       sync.Mutex
	step     Step
	cart     *cart.Store
	shipping Shipping
	inFlight bool
}

func NewMachine(cartStore *cart.Store) *Machine {
	return &Machine{cart: cartStore}
}

func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

func (m *Machine) Shipping() Shipping {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shipping
}

// SetShipping updates the draft recipient fields.
func (m *Machine) SetShipping(s Shipping) {
	m.mu.Lock()
	m.shipping = s
	m.mu.Unlock()
}

// CanProceedToShipping reports whether the cart gate is satisfied.
func (m *Machine) CanProceedToShipping() bool {
	return m.cart.Len() > 0
}

// CanProceedToReview reports whether the shipping gate is satisfied.
func (m *Machine) CanProceedToReview() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shipping.Complete()
}

// Next advances one step when the current step's gate allows it.
// At Confirm the terminal action is a checkout completion, not Next.
func (m *Machine) Next() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return domain.ErrOperationInFlight
	}

	switch m.step {
	case StepCart:
		if m.cart.Len() == 0 {
			return domain.ErrEmptyCart
		}
		m.step = StepShipping
	case StepShipping:
		if !m.shipping.Complete() {
			return domain.ErrValidation
		}
		m.step = StepReview
	case StepReview:
		m.step = StepConfirm
	case StepConfirm:
		// already at the final step
	}
	return nil
}

// Back moves one step towards the cart. At Cart it stays put.
func (m *Machine) Back() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return domain.ErrOperationInFlight
	}
	if m.step > StepCart {
		m.step--
	}
	return nil
}

// Reset returns the machine to the cart step and drops the draft
// shipping fields. Called on successful placement or panel close.
func (m *Machine) Reset() {
	m.mu.Lock()
	m.step = StepCart
	m.shipping = Shipping{}
	m.mu.Unlock()
}

// InFlight reports whether a placement or payment operation is outstanding.
func (m *Machine) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// Begin sets the in-flight flag and returns its release. The release
// must run on every exit path; callers defer it immediately. A leaked
// flag would permanently disable the checkout panel.
func (m *Machine) Begin() (release func(), err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return nil, domain.ErrOperationInFlight
	}
	m.inFlight = true
	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.inFlight = false
			m.mu.Unlock()
		})
	}, nil
}
