package app

import (
	"context"
	"errors"

	"github.com/coreos/go-oidc/v3/oidc"
)

// ErrInvalidToken indicates that the presented bearer token could not be verified.
var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService verifies OIDC bearer tokens issued by the identity provider.
// The verified token subject is the user ID handed to the aggregation
// services; nothing beyond that identity ever reaches them.
type AuthService struct {
	verifier *oidc.IDTokenVerifier
}

// NewAuthService discovers the issuer's configuration and prepares a token
// verifier for the given audience.
func NewAuthService(ctx context.Context, issuer, clientID string) (*AuthService, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	return &AuthService{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

// VerifyToken validates a raw ID token and returns its subject.
func (s *AuthService) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	token, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	if token.Subject == "" {
		return "", ErrInvalidToken
	}
	return token.Subject, nil
}
