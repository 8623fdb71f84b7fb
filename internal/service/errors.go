package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email/username/mobile or password")
	ErrInvalidRole        = errors.New("role must be guru or shishya")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrMissingField       = errors.New("required field missing")
	ErrInvalidField       = errors.New("invalid field value")
	ErrSessionInvalid     = errors.New("session expired or invalid")
	ErrInvalidResetCode   = errors.New("reset code must be 6 digits")

	ErrNotGuru      = errors.New("only gurus can do this")
	ErrForbidden    = errors.New("not allowed")
	ErrInvalidPost  = errors.New("invalid post")
	ErrMissingMedia = errors.New("image and video posts need a media file")

	ErrPayeeNotConfigured = errors.New("guru has not set up a UPI id")

	ErrInvalidCallTarget = errors.New("calls can only be made to another guru")
	ErrCallNotFound      = errors.New("call not found")

	ErrUnsupportedTheme = errors.New("theme must be light, dark or system")
	ErrEmptyFeedback    = errors.New("feedback text is required")
)
