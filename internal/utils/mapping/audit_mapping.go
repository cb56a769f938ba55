package mapping

import (
	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/SscSPs/banking_portal/internal/models"
)

// ToModelAuditLogEntry converts a domain AuditLogEntry to a model AuditLogEntry
func ToModelAuditLogEntry(d domain.AuditLogEntry) models.AuditLogEntry {
	return models.AuditLogEntry{
		EntryID:   d.EntryID,
		Actor:     d.Actor,
		Action:    string(d.Action),
		Timestamp: d.Timestamp,
		Details:   d.Details,
	}
}

// ToDomainAuditLogEntry converts a model AuditLogEntry to a domain AuditLogEntry
func ToDomainAuditLogEntry(m models.AuditLogEntry) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		EntryID:   m.EntryID,
		Actor:     m.Actor,
		Action:    domain.AuditAction(m.Action),
		Timestamp: m.Timestamp.UTC(),
		Details:   m.Details,
	}
}

// ToDomainAuditLogEntrySlice converts a slice of model entries to domain entries
func ToDomainAuditLogEntrySlice(ms []models.AuditLogEntry) []domain.AuditLogEntry {
	ds := make([]domain.AuditLogEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLogEntry(m)
	}
	return ds
}
