// Package auth holds the credential policy and session token primitives.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DemoPolicy accepts one shared password for every account. This is demo
// mode, not security: the simulated backend has no real credential store.
// It is a distinct type so a real per-user hash lookup can replace it
// behind the same Verify call.
type DemoPolicy struct {
	hash []byte
}

// NewDemoPolicy hashes the shared demo password once at startup.
func NewDemoPolicy(password string) (*DemoPolicy, error) {
	if password == "" {
		return nil, fmt.Errorf("demo password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	return &DemoPolicy{hash: hash}, nil
}

// Verify reports whether the supplied password matches the demo password.
func (p *DemoPolicy) Verify(password string) bool {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(password)) == nil
}
