// Package common defines shared constants and sentinel errors used across
// the client and server layers of passkeep. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Transport-level errors (remote store only).
	ErrTransport = errors.New("transport failure")
)
