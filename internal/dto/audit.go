package dto

import (
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// ListAuditParams defines query parameters for reading the audit trail.
type ListAuditParams struct {
	Actor     string `form:"actor"`
	Action    string `form:"action"`
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// AuditEntryResponse is one audit trail record.
type AuditEntryResponse struct {
	EntryID   int64              `json:"entryID"`
	Actor     string             `json:"actor"`
	Action    domain.AuditAction `json:"action"`
	Timestamp time.Time          `json:"timestamp"`
	Details   string             `json:"details"`
}

// ListAuditResponse is one page of the audit trail in recorded order.
type ListAuditResponse struct {
	Entries   []AuditEntryResponse `json:"entries"`
	NextToken string               `json:"nextToken,omitempty"`
}

func ToAuditEntryResponses(entries []domain.AuditLogEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryResponse{
			EntryID:   e.EntryID,
			Actor:     e.Actor,
			Action:    e.Action,
			Timestamp: e.Timestamp,
			Details:   e.Details,
		}
	}
	return out
}
