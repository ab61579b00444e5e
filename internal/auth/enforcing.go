package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

type enforcingGate struct {
	verifier      *oidc.IDTokenVerifier
	requiredScope string
	rolesClaim    string
}

// NewEnforcingGate returns a gate verifying tokens with verifier. Scopes are read
// from the space-separated "scope" claim and the "permissions" array; roles from
// rolesClaim.
func NewEnforcingGate(verifier *oidc.IDTokenVerifier, requiredScope, rolesClaim string) Gate {
	return &enforcingGate{
		verifier:      verifier,
		requiredScope: requiredScope,
		rolesClaim:    rolesClaim,
	}
}

func (g *enforcingGate) Verify(ctx context.Context, authorization string) (*Principal, error) {
	raw, err := bearerToken(authorization)
	if err != nil {
		return nil, err
	}

	token, err := g.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims map[string]any
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: unreadable claims: %v", ErrInvalidToken, err)
	}

	p := &Principal{
		Subject:  token.Subject,
		Scopes:   scopesFrom(claims),
		Roles:    stringsClaim(claims, g.rolesClaim),
		Verified: true,
	}
	if !p.HasScope(g.requiredScope) {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientScope, g.requiredScope)
	}

	return p, nil
}

func (g *enforcingGate) RequireRole(p *Principal, role string) error {
	if p == nil || p.Roles == nil {
		return nil
	}
	if !p.HasRole(role) {
		return fmt.Errorf("%w: %s", ErrForbiddenRole, role)
	}
	return nil
}

func (g *enforcingGate) Enforcing() bool {
	return true
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", fmt.Errorf("%w: expected Bearer scheme", ErrInvalidToken)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

func scopesFrom(claims map[string]any) []string {
	var scopes []string
	if s, ok := claims["scope"].(string); ok {
		scopes = append(scopes, strings.Fields(s)...)
	}
	scopes = append(scopes, stringsClaim(claims, "permissions")...)
	return scopes
}

// stringsClaim reads a claim holding a string or an array of strings. It returns
// nil when the claim is absent.
func stringsClaim(claims map[string]any, name string) []string {
	switch v := claims[name].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
