package auth

import (
	"errors"
	"strings"
)

// Provider error codes. They mirror the codes a hosted identity provider
// reports so the login and register pages can switch on them.
const (
	CodeEmailInUse         = "auth/email-already-in-use"
	CodeUserNotFound       = "auth/user-not-found"
	CodeInvalidCredentials = "auth/invalid-credential"
	CodeInvalidEmail       = "auth/invalid-email"
	CodeWeakPassword       = "auth/weak-password"
	CodeNotSignedIn        = "auth/no-current-user"
)

// ProviderError is an authentication failure with a stable code.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message + " (" + e.Code + ")"
}

var (
	ErrEmailInUse         = &ProviderError{Code: CodeEmailInUse, Message: "email address is already in use"}
	ErrUserNotFound       = &ProviderError{Code: CodeUserNotFound, Message: "no user record for this email"}
	ErrInvalidCredentials = &ProviderError{Code: CodeInvalidCredentials, Message: "invalid credentials"}
	ErrInvalidEmail       = &ProviderError{Code: CodeInvalidEmail, Message: "email address is badly formatted"}
	ErrWeakPassword       = &ProviderError{Code: CodeWeakPassword, Message: "password should be at least 6 characters"}
	ErrNotSignedIn        = &ProviderError{Code: CodeNotSignedIn, Message: "no user is signed in"}
)

// Code returns the provider code carried by err, or "" when err did not
// come from the provider.
func Code(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// LoginMessage maps a sign-in failure to the text shown on the login page.
func LoginMessage(err error) string {
	switch Code(err) {
	case CodeUserNotFound:
		return "User does not exist"
	case CodeInvalidCredentials:
		return "Invalid credentials"
	default:
		return "Login error"
	}
}

// RegisterMessage maps a sign-up failure to the text shown on the register
// page.
func RegisterMessage(err error) string {
	if Code(err) == CodeEmailInUse {
		return "An account with this email already exists"
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return "Registration failed: " + pe.Message
	}
	if err == nil {
		return "Registration failed"
	}
	return "Registration failed: " + err.Error()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
