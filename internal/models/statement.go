package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement represents a row of the statements table.
type Statement struct {
	StatementID    string          `db:"statement_id"`
	AccountNumber  string          `db:"account_number"`
	StatementDate  time.Time       `db:"statement_date"`
	DocumentRef    string          `db:"document_ref"`
	StatementType  string          `db:"statement_type"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	CreatedAt      time.Time       `db:"created_at"`
}
