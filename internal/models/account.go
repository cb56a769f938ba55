package models

import "database/sql"

// Account represents a row of the accounts table.
type Account struct {
	AccountNumber string         `db:"account_number"`
	Last4SSN      string         `db:"last4_ssn"`
	LinkStatus    string         `db:"link_status"`
	OwnerUserID   sql.NullString `db:"owner_user_id"` // NULL unless LINKED
	Version       int64          `db:"version"`
	AuditFields
}
