package service

import "errors"

// Business-rule errors surfaced to handlers. Ownership violations reuse the
// not-found errors: callers cannot distinguish another user's entity from a
// nonexistent one.
var (
	ErrEmailTaken            = errors.New("user with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrFederatedAccount      = errors.New("please sign in with Google")
	ErrUserNotFound          = errors.New("user not found")
	ErrFirebaseNotConfigured = errors.New("firebase auth is not configured")

	ErrBoardNotFound        = errors.New("board not found")
	ErrColumnNotFound       = errors.New("column not found")
	ErrTargetColumnNotFound = errors.New("target column not found")
	ErrCardNotFound         = errors.New("card not found")
	ErrInvalidPosition      = errors.New("position out of range")
)
