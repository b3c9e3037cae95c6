// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing, expired or revoked token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an authenticated caller without the needed role.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials is the single failure returned by login. Unknown
	// user and wrong password are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrDuplicateUsername indicates the username is taken.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrInvalidRole indicates a role outside the closed role set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrRateLimited indicates temporary login lock due to repeated failures.
	ErrRateLimited = errors.New("too many failed login attempts")
)
