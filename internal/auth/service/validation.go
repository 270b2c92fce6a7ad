package service

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/aussiebroadwan/devconnect/pkg/cryptox"
)

const (
	MsgNameRequired  = "Name is required"
	MsgEmailInvalid  = "Please include a valid email"
	MsgPasswordShort = "Please enter a password with 6 or more characters"
	MsgPasswordLong  = "Please enter a password of at most 72 bytes"
	MsgPasswordEmpty = "Password is required"

	MinPasswordLength = 6
	MaxPasswordLength = cryptox.MaxPasswordBytes
)

type registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registration) validate() error {
	return fieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error(MsgNameRequired)),
		validation.Field(&r.Email,
			validation.Required.Error(MsgEmailInvalid),
			is.Email.Error(MsgEmailInvalid),
		),
		validation.Field(&r.Password,
			validation.Required.Error(MsgPasswordShort),
			validation.Length(MinPasswordLength, 0).Error(MsgPasswordShort),
			validation.Length(0, MaxPasswordLength).Error(MsgPasswordLong),
		),
	), "name", "email", "password")
}

type login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l login) validate() error {
	return fieldErrors(validation.ValidateStruct(&l,
		validation.Field(&l.Email,
			validation.Required.Error(MsgEmailInvalid),
			is.Email.Error(MsgEmailInvalid),
		),
		validation.Field(&l.Password, validation.Required.Error(MsgPasswordEmpty)),
	), "email", "password")
}

// fieldErrors converts ozzo's per-field map into a ValidationError listing
// fields in the given order.
func fieldErrors(err error, order ...string) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	out := &ValidationError{}
	for _, field := range order {
		if fe, ok := errs[field]; ok {
			out.Fields = append(out.Fields, FieldError{Field: field, Message: fe.Error()})
		}
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
