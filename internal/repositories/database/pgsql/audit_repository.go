package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/banking_portal/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_portal/internal/core/ports/repositories"
	"github.com/SscSPs/banking_portal/internal/models"
	"github.com/SscSPs/banking_portal/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// auditAppendLockKey serialises appends so the stored timestamp can be clamped to the latest one.
const auditAppendLockKey int64 = 0x61756469745f6c67

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(base BaseRepository) *PgxAuditRepository {
	return &PgxAuditRepository{BaseRepository: base}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// AppendEntry inserts the entry inside a transaction holding an advisory lock, so the
// GREATEST clamp and the BIGSERIAL id agree on the order of concurrent appends.
func (r *PgxAuditRepository) AppendEntry(ctx context.Context, entry domain.AuditLogEntry) (domain.AuditLogEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return domain.AuditLogEntry{}, err
	}
	defer r.Rollback(context.WithoutCancel(ctx), tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, auditAppendLockKey); err != nil {
		return domain.AuditLogEntry{}, unavailable("lock audit log", err)
	}

	m := mapping.ToModelAuditLogEntry(entry)
	query := `
		INSERT INTO audit_log (actor, action, ts, details)
		VALUES ($1, $2, GREATEST($3::timestamptz, COALESCE((SELECT MAX(ts) FROM audit_log), $3::timestamptz)), $4)
		RETURNING entry_id, ts;`
	if err := tx.QueryRow(ctx, query, m.Actor, m.Action, m.Timestamp, m.Details).Scan(&m.EntryID, &m.Timestamp); err != nil {
		return domain.AuditLogEntry{}, unavailable("append audit entry", err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return domain.AuditLogEntry{}, err
	}
	return mapping.ToDomainAuditLogEntry(m), nil
}

func (r *PgxAuditRepository) FindEntries(ctx context.Context, filter domain.AuditFilter, limit int) ([]domain.AuditLogEntry, error) {
	query, args := buildAuditQuery(filter, limit)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable("query audit log", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditLogEntry, error) {
		var m models.AuditLogEntry
		err := row.Scan(&m.EntryID, &m.Actor, &m.Action, &m.Timestamp, &m.Details)
		return m, err
	})
	if err != nil {
		return nil, unavailable("scan audit log", err)
	}
	return mapping.ToDomainAuditLogEntrySlice(entries), nil
}

// buildAuditQuery renders filter as a parameterised query in (ts, entry_id) order.
func buildAuditQuery(filter domain.AuditFilter, limit int) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Actor != nil {
		conds = append(conds, "actor = "+arg(*filter.Actor))
	}
	if filter.Action != nil {
		conds = append(conds, "action = "+arg(string(*filter.Action)))
	}
	if filter.DateRange != nil {
		if !filter.DateRange.From.IsZero() {
			conds = append(conds, "ts >= "+arg(filter.DateRange.From))
		}
		if !filter.DateRange.To.IsZero() {
			conds = append(conds, "ts <= "+arg(filter.DateRange.To))
		}
	}
	if filter.After != nil {
		ts := arg(filter.After.Timestamp)
		id := arg(filter.After.EntryID)
		conds = append(conds, fmt.Sprintf("(ts, entry_id) > (%s, %s)", ts, id))
	}

	var sb strings.Builder
	sb.WriteString("SELECT entry_id, actor, action, ts, details FROM audit_log")
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY ts, entry_id")
	if limit > 0 {
		sb.WriteString(" LIMIT " + arg(limit))
	}
	return sb.String(), args
}
