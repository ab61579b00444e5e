package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/phrazzld/anime-api/internal/config"
)

// Gate decides whether a request may perform a write.
type Gate interface {
	// Verify authenticates the Authorization header value and checks the
	// required write scope.
	Verify(ctx context.Context, authorization string) (*Principal, error)

	// RequireRole checks that p carries role. Principals whose token has no
	// roles claim are admitted.
	RequireRole(p *Principal, role string) error

	// Enforcing reports whether tokens are actually verified.
	Enforcing() bool
}

// NewGate selects the gate implementation from configuration. Missing issuer or
// audience, or the disabled flag, select the pass-through gate and log a warning.
// Otherwise the issuer's discovery document is fetched; failing to reach it is an
// error so the process does not start half-protected.
func NewGate(ctx context.Context, cfg config.AuthConfig, logger *slog.Logger) (Gate, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch {
	case cfg.Disabled:
		logger.Warn("authorization disabled by configuration, write routes are unprotected")
		return NewPassThroughGate(), nil
	case cfg.IssuerURL == "" || cfg.Audience == "":
		logger.Warn("authorization issuer or audience not configured, write routes are unprotected",
			slog.Bool("issuer_set", cfg.IssuerURL != ""),
			slog.Bool("audience_set", cfg.Audience != ""))
		return NewPassThroughGate(), nil
	}

	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity provider configuration: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.Audience})
	logger.Info("authorization enforced",
		slog.String("issuer", cfg.IssuerURL),
		slog.String("required_scope", cfg.RequiredScope))

	return NewEnforcingGate(verifier, cfg.RequiredScope, cfg.RolesClaim), nil
}
