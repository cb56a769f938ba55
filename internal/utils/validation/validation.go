// Package validation registers the portal's field rules with validator/v10 and
// exposes them to both services and gin request binding.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	TagAccountNumber = "acctnum"
	TagLast4SSN      = "last4ssn"
	TagPassword      = "password"

	MinPasswordLength = 8
)

var (
	accountNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]{3,34}$`)
	last4SSNPattern      = regexp.MustCompile(`^[0-9]{4}$`)

	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		mustRegister(instance)
	})
	return instance
}

// RegisterWithGin installs the custom rules on gin's binding engine so
// `binding:"acctnum"` style tags work on request DTOs.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return register(v)
}

func mustRegister(v *validator.Validate) {
	if err := register(v); err != nil {
		panic(fmt.Sprintf("registering validation rules: %v", err))
	}
}

func register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		TagAccountNumber: func(fl validator.FieldLevel) bool {
			return IsAccountNumber(fl.Field().String())
		},
		TagLast4SSN: func(fl validator.FieldLevel) bool {
			return IsLast4SSN(fl.Field().String())
		},
		TagPassword: func(fl validator.FieldLevel) bool {
			return IsStrongPassword(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// IsAccountNumber reports whether s is a well-formed account number.
func IsAccountNumber(s string) bool {
	return accountNumberPattern.MatchString(s)
}

// IsLast4SSN reports whether s is exactly four digits.
func IsLast4SSN(s string) bool {
	return last4SSNPattern.MatchString(s)
}

// IsStrongPassword requires the minimum length, one uppercase letter and one digit.
func IsStrongPassword(s string) bool {
	if len([]rune(s)) < MinPasswordLength {
		return false
	}
	var upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && digit
}

// Struct validates s and wraps any failure in apperrors.ErrValidation.
func Struct(s any) error {
	if err := Validator().Struct(s); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, describe(err))
	}
	return nil
}

// Var validates a single value against tag.
func Var(field string, value any, tag string) error {
	if err := Validator().Var(value, tag); err != nil {
		return fmt.Errorf("%w: %s failed %q", apperrors.ErrValidation, field, tag)
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
