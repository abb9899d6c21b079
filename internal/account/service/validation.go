package service

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ErrValidation marks input rejected before any side effect.
var ErrValidation = errors.New("validation failed")

// ValidationError carries per-field messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// RegisterInput is the payload for Register.
type RegisterInput struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize lowercases login and email and trims surrounding space.
func (in *RegisterInput) Normalize() {
	in.Login = strings.ToLower(strings.TrimSpace(in.Login))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// Validate checks the normalized payload.
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Login, validation.Required, validation.RuneLength(1, 32)),
		validation.Field(&in.Email, validation.Required, validation.RuneLength(3, 64), is.Email),
		validation.Field(&in.Password, validation.Required, validation.RuneLength(8, 64)),
	)
}

// LoginInput is the payload for Login.
type LoginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (in *LoginInput) Normalize() {
	in.Login = strings.ToLower(strings.TrimSpace(in.Login))
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Login, validation.Required, validation.RuneLength(1, 32)),
		validation.Field(&in.Password, validation.Required, validation.RuneLength(1, 64)),
	)
}

// asValidationError converts ozzo errors into a ValidationError.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for name, ferr := range fieldErrs {
		fields[name] = ferr.Error()
	}
	return &ValidationError{Fields: fields}
}
