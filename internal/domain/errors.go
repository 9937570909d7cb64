package domain

import "errors"

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrUserInactive              = errors.New("user is inactive")
	ErrDuplicateEmail            = errors.New("email already registered")
	ErrEmailNotVerified          = errors.New("email not verified")
	ErrInvalidInput              = errors.New("invalid calculation input")
	ErrUnknownTaxType            = errors.New("unknown tax type")
	ErrNegativeAmount            = errors.New("amounts must be non-negative")
	ErrExportFailed              = errors.New("export generation failed")
	ErrPasswordResetTokenInvalid = errors.New("password reset token is invalid or has already been used")
	ErrVerificationTokenInvalid  = errors.New("email verification token is invalid or expired")
)
