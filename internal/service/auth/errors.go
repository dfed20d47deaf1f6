package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrWrongTokenType indicates a refresh token was presented as an access token or vice versa
	ErrWrongTokenType = errors.New("wrong authentication token type")

	// ErrInvalidCredentials indicates an unknown username or a password mismatch
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Client-facing authentication messages.
const (
	MsgCouldNotAuthenticate = "Could not authenticate user"
	MsgTokenExpired         = "Token has expired"
	MsgCouldNotVerify       = "Could not verify token"
	MsgCouldNotCreateToken  = "Could not create token"
)
