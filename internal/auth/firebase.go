package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

var (
	ErrInvalidIDToken = errors.New("invalid firebase id token")
	ErrMissingEmail   = errors.New("email not provided by firebase")
)

// Firebase ID tokens are standard OIDC tokens issued by the secure token
// service, with the project ID as both issuer suffix and audience.
const firebaseIssuerPrefix = "https://securetoken.google.com/"

type ExternalIdentity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

type FirebaseVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewFirebaseVerifier discovers the Firebase token issuer for the given
// project. Built once at startup and injected; a missing project ID is a
// configuration-time decision, not a per-request one.
func NewFirebaseVerifier(ctx context.Context, projectID string) (*FirebaseVerifier, error) {
	provider, err := oidc.NewProvider(ctx, firebaseIssuerPrefix+projectID)
	if err != nil {
		return nil, fmt.Errorf("firebase provider discovery failed: %w", err)
	}
	return &FirebaseVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: projectID}),
	}, nil
}

// Verify checks the ID token signature and audience and extracts the local
// identity claims. Name and picture are best-effort enrichment; only the
// email claim is mandatory.
func (f *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	token, err := f.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidIDToken
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := token.Claims(&claims); err != nil {
		return nil, ErrInvalidIDToken
	}
	if claims.Email == "" {
		return nil, ErrMissingEmail
	}

	return &ExternalIdentity{
		UID:     token.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
