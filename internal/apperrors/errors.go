package apperrors

import (
	"errors"
)

var (
	ErrInvalidRequest = errors.New("invalid request")

	ErrUserNotFound     = errors.New("user not found")
	ErrAuthCodeNotFound = errors.New("authorization code not found")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenRevoked  = errors.New("refresh token is revoked")
	ErrRefreshTokenExpired  = errors.New("refresh token is expired")

	// Access token failed signature, issuer, audience or expiry checks
	ErrInvalidToken = errors.New("invalid access token")

	ErrInvalidRole       = errors.New("invalid role")
	ErrRoleAlreadyExists = errors.New("role already exists")

	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailTaken       = errors.New("email must be unique")
)
