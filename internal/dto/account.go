package dto

import (
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// LinkAccountRequest carries the partial identity data a user supplies to link an account.
type LinkAccountRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required,acctnum"`
	Last4SSN      string `json:"last4SSN" binding:"required,last4ssn"`
}

// LinkAccountResponse reports the outcome of a linking episode.
type LinkAccountResponse struct {
	AccountNumber string                    `json:"accountNumber"`
	State         domain.EpisodeState       `json:"state"`
	Verification  domain.VerificationResult `json:"verification,omitempty"`
	Result        domain.LinkResult         `json:"result,omitempty"`
	FailureReason domain.FailureReason      `json:"failureReason,omitempty"`
	DegradedAudit bool                      `json:"degradedAudit"`
}

// UnlinkAccountResponse reports the outcome of an unlink request.
type UnlinkAccountResponse struct {
	AccountNumber string              `json:"accountNumber"`
	State         domain.EpisodeState `json:"state,omitempty"`
	Result        domain.UnlinkResult `json:"result"`
	DegradedAudit bool                `json:"degradedAudit"`
}

// AccountResponse is the user-facing view of a linked account. Verification digits are never returned.
type AccountResponse struct {
	AccountNumber string            `json:"accountNumber"`
	LinkStatus    domain.LinkStatus `json:"linkStatus"`
	LinkedAt      time.Time         `json:"linkedAt"`
}

// ListAccountsResponse wraps the linked accounts of the caller.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ProvisionAccountRequest registers an account from the core banking system.
type ProvisionAccountRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required,acctnum"`
	Last4SSN      string `json:"last4SSN" binding:"required,last4ssn"`
}

// ProvisionAccountResponse confirms a provisioned account using its masked number.
type ProvisionAccountResponse struct {
	AccountNumber string            `json:"accountNumber"`
	LinkStatus    domain.LinkStatus `json:"linkStatus"`
}

func ToLinkAccountResponse(accountNumber string, o domain.LinkingOutcome) LinkAccountResponse {
	return LinkAccountResponse{
		AccountNumber: domain.MaskAccountNumber(accountNumber),
		State:         o.State,
		Verification:  o.Verification,
		Result:        o.LinkResult,
		FailureReason: o.FailureReason,
		DegradedAudit: o.DegradedAudit,
	}
}

func ToUnlinkAccountResponse(accountNumber string, o domain.UnlinkingOutcome) UnlinkAccountResponse {
	return UnlinkAccountResponse{
		AccountNumber: domain.MaskAccountNumber(accountNumber),
		State:         o.State,
		Result:        o.Result,
		DegradedAudit: o.DegradedAudit,
	}
}

// ToListAccountsResponse converts linked accounts to their response form
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = AccountResponse{
			AccountNumber: a.AccountNumber,
			LinkStatus:    a.LinkStatus,
			LinkedAt:      a.LastUpdatedAt,
		}
	}
	return ListAccountsResponse{Accounts: out}
}
