package auth

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LoginForm is the login page input.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// RegisterForm is the register page input.
type RegisterForm struct {
	Username        string `validate:"required,min=3"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// FieldErrors maps a form field name to its first failing message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// messages is keyed by "Field.tag".
var messages = map[string]string{
	"Email.required":           "Email is required",
	"Password.required":        "Password is required",
	"Username.required":        "Username is required",
	"Username.min":             "Username must be at least 3 characters",
	"Password.min":             "Password must be at least 8 characters",
	"ConfirmPassword.required": "Confirm Password is required",
	"ConfirmPassword.eqfield":  "Passwords must match",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateLogin checks f and returns FieldErrors, or nil when valid.
func ValidateLogin(f LoginForm) FieldErrors {
	f.Email = strings.TrimSpace(f.Email)
	return check(f, "Invalid email")
}

// ValidateRegister checks f and returns FieldErrors, or nil when valid.
func ValidateRegister(f RegisterForm) FieldErrors {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
	return check(f, "Enter a valid email")
}

func check(form any, badEmail string) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if field == "Email" && fe.Tag() == "email" {
			out[field] = badEmail
			continue
		}
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			out[field] = msg
		} else {
			out[field] = field + " is invalid"
		}
	}
	return out
}
