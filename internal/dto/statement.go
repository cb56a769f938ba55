package dto

import (
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementResponse is statement metadata as served to the account owner.
type StatementResponse struct {
	StatementID    string               `json:"statementID"`
	AccountNumber  string               `json:"accountNumber"`
	StatementDate  time.Time            `json:"statementDate"`
	Type           domain.StatementType `json:"type"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
}

// DownloadStatementResponse carries the document locator for the statement.
type DownloadStatementResponse struct {
	StatementID string                   `json:"statementID"`
	DocumentRef domain.DocumentReference `json:"documentRef"`
}

// ListStatementsParams defines query parameters for searching statements by date.
type ListStatementsParams struct {
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListStatementsResponse is one page of search results.
type ListStatementsResponse struct {
	Statements []StatementResponse `json:"statements"`
	NextToken  string              `json:"nextToken,omitempty"`
}

// PublishStatementRequest is posted by the statement generator once a document is rendered.
type PublishStatementRequest struct {
	StatementID    string               `json:"statementID" binding:"required,max=64,excludesall=/"`
	AccountNumber  string               `json:"accountNumber" binding:"required,acctnum"`
	StatementDate  string               `json:"statementDate" binding:"required,datetime=2006-01-02"`
	DocumentRef    string               `json:"documentRef" binding:"required,max=512"`
	Type           domain.StatementType `json:"type" binding:"required,oneof=MONTHLY ANNUAL TAX_FORM"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
}

func ToStatementResponse(s *domain.Statement) StatementResponse {
	return StatementResponse{
		StatementID:    s.StatementID,
		AccountNumber:  s.AccountNumber,
		StatementDate:  s.StatementDate,
		Type:           s.Type,
		ClosingBalance: s.ClosingBalance,
	}
}

// ToDomain converts the request into statement metadata. The date must already be validated.
func (r PublishStatementRequest) ToDomain() (domain.Statement, error) {
	date, err := time.Parse(DateLayout, r.StatementDate)
	if err != nil {
		return domain.Statement{}, err
	}
	return domain.Statement{
		StatementID:    r.StatementID,
		AccountNumber:  r.AccountNumber,
		StatementDate:  date,
		DocumentRef:    domain.DocumentReference(r.DocumentRef),
		Type:           r.Type,
		ClosingBalance: r.ClosingBalance,
	}, nil
}
