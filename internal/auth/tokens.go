package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"kanny/internal/config"
	"kanny/internal/model"
	"kanny/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidAccessToken  = errors.New("invalid token")
	ErrInvalidClaims       = errors.New("invalid claims")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"-"`
}

// TokenService issues short-lived access tokens and store-backed refresh
// tokens. A refresh token embeds a random token_id whose server-side record
// must exist for the token to be redeemable; redemption rotates the record.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	tokens        repository.RefreshTokenRepositoryInterface
}

func NewTokenService(cfg *config.Config, tokens repository.RefreshTokenRepositoryInterface) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.JWTSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		tokens:        tokens,
	}
}

// Issue creates a new access/refresh pair and persists the refresh record.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, err
	}

	refreshToken, record, err := s.mintRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccess returns the user ID carried by a valid access token.
func (s *TokenService) VerifyAccess(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidAccessToken
		}
		return s.accessSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidAccessToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return uuid.Nil, ErrInvalidClaims
	}

	userStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidClaims
	}
	userID, err := uuid.Parse(userStr)
	if err != nil {
		return uuid.Nil, ErrInvalidClaims
	}
	return userID, nil
}

// Redeem exchanges a valid refresh token for a brand-new pair. The consumed
// record is invalidated and replaced atomically: replaying a redeemed token
// fails the store lookup. A token whose record outlived its expiry is deleted
// before the failure is reported.
func (s *TokenService) Redeem(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, tokenID, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	record, err := s.tokens.GetByID(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.UserID != userID {
		return nil, ErrInvalidRefreshToken
	}
	if time.Now().After(record.ExpiresAt) {
		if err := s.tokens.Delete(ctx, tokenID); err != nil {
			return nil, err
		}
		return nil, ErrRefreshTokenExpired
	}

	accessToken, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	newRefreshToken, replacement, err := s.mintRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Rotate(ctx, tokenID, replacement); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

// Revoke deletes the store record behind a refresh token. Callers treat
// logout as best-effort; they decide what to do with the error.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	userID, tokenID, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return err
	}
	return s.tokens.DeleteByUserAndID(ctx, userID, tokenID)
}

func (s *TokenService) generateAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

func (s *TokenService) mintRefreshToken(userID uuid.UUID) (string, *model.RefreshToken, error) {
	tokenID, err := newTokenID()
	if err != nil {
		return "", nil, err
	}

	expiresAt := time.Now().Add(s.refreshTTL)
	claims := jwt.MapClaims{
		"user_id":  userID.String(),
		"token_id": tokenID,
		"exp":      expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.refreshSecret)
	if err != nil {
		return "", nil, err
	}

	return signed, &model.RefreshToken{
		ID:        tokenID,
		Token:     signed,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *TokenService) parseRefreshToken(tokenStr string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidRefreshToken
		}
		return s.refreshSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, "", ErrRefreshTokenExpired
		}
		return uuid.Nil, "", ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", ErrInvalidRefreshToken
	}
	userStr, _ := claims["user_id"].(string)
	tokenID, _ := claims["token_id"].(string)
	if userStr == "" || tokenID == "" {
		return uuid.Nil, "", ErrInvalidRefreshToken
	}
	userID, err := uuid.Parse(userStr)
	if err != nil {
		return uuid.Nil, "", ErrInvalidRefreshToken
	}
	return userID, tokenID, nil
}

func newTokenID() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
