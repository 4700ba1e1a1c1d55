package service

import (
	"context"
	"log"
	"strings"

	"kanny/internal/auth"
	"kanny/internal/model"
	"kanny/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer is the token lifecycle consumed by the auth flows.
type TokenIssuer interface {
	Issue(ctx context.Context, userID uuid.UUID) (*auth.TokenPair, error)
	Redeem(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
}

// IdentityVerifier verifies externally-issued ID tokens.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*auth.ExternalIdentity, error)
}

// AuthService composes credential checks, Firebase verification and token
// issuance into the signup/login/refresh/logout flows. Stateless between
// calls; all durable state lives behind the repositories.
type AuthService struct {
	users    repository.UserRepositoryInterface
	tokens   TokenIssuer
	verifier IdentityVerifier
}

// NewAuthService wires the auth flows. verifier may be nil when Firebase is
// not configured; federated auth then fails with ErrFirebaseNotConfigured.
func NewAuthService(users repository.UserRepositoryInterface, tokens TokenIssuer, verifier IdentityVerifier) *AuthService {
	return &AuthService{users: users, tokens: tokens, verifier: verifier}
}

type AuthResult struct {
	User    *model.User
	Tokens  *auth.TokenPair
	Created bool
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = strings.ToLower(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashed := string(hash)

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: &hashed,
		Name:         name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: pair, Created: true}, nil
}

// Login never reveals whether the email exists or the password mismatched,
// except for federated-only accounts, which get pointed at Google sign-in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		return nil, ErrFederatedAccount
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: pair}, nil
}

// FirebaseAuth exchanges a verified Firebase ID token for local tokens,
// matching an existing user by Firebase UID first, then by email. Matched
// users get their UID and avatar backfilled; unknown identities become new
// users with a display name derived from the token or the email local-part.
func (s *AuthService) FirebaseAuth(ctx context.Context, idToken string) (*AuthResult, error) {
	if s.verifier == nil {
		return nil, ErrFirebaseNotConfigured
	}

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(identity.Email)

	user, err := s.users.FindByFirebaseUID(ctx, identity.UID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
	}

	created := false
	if user == nil {
		name := identity.Name
		if name == "" {
			name = strings.SplitN(email, "@", 2)[0]
		}
		uid := identity.UID
		user = &model.User{
			ID:          uuid.New(),
			Email:       email,
			FirebaseUID: &uid,
			Name:        name,
		}
		if identity.Picture != "" {
			picture := identity.Picture
			user.Avatar = &picture
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		created = true
	} else if err := s.backfillIdentity(ctx, user, identity); err != nil {
		return nil, err
	}

	pair, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: pair, Created: created}, nil
}

func (s *AuthService) backfillIdentity(ctx context.Context, user *model.User, identity *auth.ExternalIdentity) error {
	changed := false
	if user.FirebaseUID == nil {
		uid := identity.UID
		user.FirebaseUID = &uid
		changed = true
	}
	if identity.Picture != "" && (user.Avatar == nil || *user.Avatar != identity.Picture) {
		picture := identity.Picture
		user.Avatar = &picture
		changed = true
	}
	if !changed {
		return nil
	}
	return s.users.Update(ctx, user)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	return s.tokens.Redeem(ctx, refreshToken)
}

// Logout never fails the caller. Revocation errors are logged and dropped.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		log.Printf("⚠️  Logout revocation failed: %v", err)
	}
}

func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
