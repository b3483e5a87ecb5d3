package auth

import (
	"context"
	"sync"
)

// User is the profile exposed by the hosted identity provider.
type User struct {
	UID   string
	Name  string
	Email string
	Phone string
}

// Provider is the surface of the hosted identity provider: a nullable
// current-user observable plus sign-in/sign-out. The provider itself is
// a black box; this module never implements an authentication protocol.
type Provider interface {
	CurrentUser() *User
	OnChange(fn func(*User))
	SignIn(ctx context.Context, user User) error
	SignOut(ctx context.Context) error
}

// MemoryProvider is a session-scoped Provider for embedding and tests.
// Observers are notified synchronously on every change.
type MemoryProvider struct {
	mu        sync.Mutex
	current   *User
	observers []func(*User)
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

func (p *MemoryProvider) CurrentUser() *User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}

func (p *MemoryProvider) OnChange(fn func(*User)) {
	p.mu.Lock()
	p.observers = append(p.observers, fn)
	p.mu.Unlock()
}

func (p *MemoryProvider) SignIn(_ context.Context, user User) error {
	p.mu.Lock()
	p.current = &user
	p.notifyLocked()
	return nil
}

func (p *MemoryProvider) SignOut(_ context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.notifyLocked()
	return nil
}

func (p *MemoryProvider) notifyLocked() {
	current := p.current
	if current != nil {
		u := *current
		current = &u
	}
	observers := make([]func(*User), len(p.observers))
	copy(observers, p.observers)
	p.mu.Unlock()

	for _, fn := range observers {
		fn(current)
	}
}
