package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrColumnNotFound is returned when a column is not found
	ErrColumnNotFound = errors.New("column not found")

	// ErrCardNotFound is returned when a card is not found
	ErrCardNotFound = errors.New("card not found")

	// ErrRefreshTokenNotFound is returned when a refresh token record is not found
	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// ErrInvalidPosition is returned when a move targets a position outside
	// the valid 0..n range of the destination container
	ErrInvalidPosition = errors.New("position out of range")
)
