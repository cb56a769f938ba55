package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementType enumerates the kinds of documents the statement generator produces.
type StatementType string

const (
	StatementMonthly StatementType = "MONTHLY"
	StatementAnnual  StatementType = "ANNUAL"
	StatementTaxForm StatementType = "TAX_FORM"
)

// DocumentReference is an opaque locator for a rendered statement document.
type DocumentReference string

// Statement is read-only metadata about a statement produced by the external generator.
type Statement struct {
	StatementID    string            `json:"statementID"`
	AccountNumber  string            `json:"accountNumber"`
	StatementDate  time.Time         `json:"statementDate"`
	DocumentRef    DocumentReference `json:"documentRef"`
	Type           StatementType     `json:"type"`
	ClosingBalance decimal.Decimal   `json:"closingBalance"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// StatementCursor is a position in the (statementDate desc, statementID asc) order.
type StatementCursor struct {
	StatementDate time.Time
	StatementID   string
}

// Cursor returns the position of s in search order.
func (s Statement) Cursor() StatementCursor {
	return StatementCursor{StatementDate: s.StatementDate, StatementID: s.StatementID}
}

// Before reports whether c sorts strictly before o in search order.
func (c StatementCursor) Before(o StatementCursor) bool {
	if c.StatementDate.Equal(o.StatementDate) {
		return c.StatementID < o.StatementID
	}
	return c.StatementDate.After(o.StatementDate)
}
