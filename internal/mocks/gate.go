package mocks

import (
	"context"

	"github.com/phrazzld/anime-api/internal/auth"
)

// MockGate implements auth.Gate for testing.
type MockGate struct {
	VerifyFn      func(ctx context.Context, authorization string) (*auth.Principal, error)
	RequireRoleFn func(p *auth.Principal, role string) error

	// Default response values
	Principal *auth.Principal
	Err       error
	RoleErr   error
	Enforced  bool

	// Headers records the Authorization values passed to Verify.
	Headers []string
}

var _ auth.Gate = (*MockGate)(nil)

// Verify implements auth.Gate.
func (m *MockGate) Verify(ctx context.Context, authorization string) (*auth.Principal, error) {
	m.Headers = append(m.Headers, authorization)
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, authorization)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Principal != nil {
		return m.Principal, nil
	}
	return &auth.Principal{Subject: "test-subject", Verified: true}, nil
}

// RequireRole implements auth.Gate.
func (m *MockGate) RequireRole(p *auth.Principal, role string) error {
	if m.RequireRoleFn != nil {
		return m.RequireRoleFn(p, role)
	}
	return m.RoleErr
}

// Enforcing implements auth.Gate.
func (m *MockGate) Enforcing() bool {
	return m.Enforced
}
