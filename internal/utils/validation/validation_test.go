package validation

import (
	"testing"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestIsAccountNumber(t *testing.T) {
	assert.True(t, IsAccountNumber("ACC-001"))
	assert.True(t, IsAccountNumber("1234567890"))
	assert.False(t, IsAccountNumber("ab"))
	assert.False(t, IsAccountNumber("has space"))
	assert.False(t, IsAccountNumber(""))
}

func TestIsLast4SSN(t *testing.T) {
	assert.True(t, IsLast4SSN("0123"))
	assert.False(t, IsLast4SSN("123"))
	assert.False(t, IsLast4SSN("12345"))
	assert.False(t, IsLast4SSN("12a4"))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Secret123"))
	assert.False(t, IsStrongPassword("Sh0rt"))
	assert.False(t, IsStrongPassword("nouppercase1"))
	assert.False(t, IsStrongPassword("NoDigitsHere"))
}

type linkInput struct {
	AccountNumber string `validate:"required,acctnum"`
	Last4SSN      string `validate:"required,last4ssn"`
	Email         string `validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(linkInput{AccountNumber: "ACC-1", Last4SSN: "1234", Email: "a@b.co"}))

	err := Struct(linkInput{AccountNumber: "!", Last4SSN: "12"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "AccountNumber")
	assert.Contains(t, err.Error(), "Last4SSN")
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("email", "user@example.com", "required,email"))
	assert.ErrorIs(t, Var("email", "not-an-email", "required,email"), apperrors.ErrValidation)
}
