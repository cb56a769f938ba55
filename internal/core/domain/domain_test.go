package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "****7890", MaskAccountNumber("1234567890"))
	assert.Equal(t, "****", MaskAccountNumber("123"))
	assert.Equal(t, "****", MaskAccountNumber(""))
}

func TestAccountIsLinkedTo(t *testing.T) {
	acct := Account{AccountNumber: "ACC-1", LinkStatus: LinkStatusLinked, OwnerUserID: "u1"}
	assert.True(t, acct.IsLinkedTo("u1"))
	assert.False(t, acct.IsLinkedTo("u2"))

	acct.LinkStatus = LinkStatusPendingVerification
	assert.False(t, acct.IsLinkedTo("u1"))
}

func TestDateRange(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, DateRange{From: jan, To: feb}.IsValid())
	assert.True(t, DateRange{From: jan, To: jan}.IsValid())
	assert.False(t, DateRange{From: feb, To: jan}.IsValid())
	assert.True(t, DateRange{}.IsValid())

	r := DateRange{From: jan, To: feb}
	assert.True(t, r.Contains(jan))
	assert.True(t, r.Contains(feb))
	assert.False(t, r.Contains(feb.Add(time.Nanosecond)))
	assert.True(t, DateRange{From: jan}.Contains(feb.AddDate(10, 0, 0)))
}

func TestAuditCursorOrder(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := AuditCursor{Timestamp: t0, EntryID: 1}
	b := AuditCursor{Timestamp: t0, EntryID: 2}
	c := AuditCursor{Timestamp: t0.Add(time.Second), EntryID: 0}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

func TestAuditFilterMatches(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := AuditLogEntry{EntryID: 5, Actor: "u1", Action: ActionAccountLinked, Timestamp: t0}

	actor := "u1"
	other := "u2"
	action := ActionAccountLinked
	assert.True(t, AuditFilter{}.Matches(entry))
	assert.True(t, AuditFilter{Actor: &actor, Action: &action}.Matches(entry))
	assert.False(t, AuditFilter{Actor: &other}.Matches(entry))
	assert.False(t, AuditFilter{DateRange: &DateRange{From: t0.Add(time.Minute)}}.Matches(entry))
	assert.False(t, AuditFilter{After: &AuditCursor{Timestamp: t0, EntryID: 5}}.Matches(entry))
	assert.True(t, AuditFilter{After: &AuditCursor{Timestamp: t0, EntryID: 4}}.Matches(entry))
}

func TestStatementCursorOrder(t *testing.T) {
	newer := StatementCursor{StatementDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), StatementID: "b"}
	older := StatementCursor{StatementDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), StatementID: "a"}
	sameDate := StatementCursor{StatementDate: newer.StatementDate, StatementID: "c"}

	assert.True(t, newer.Before(older))
	assert.True(t, newer.Before(sameDate))
	assert.False(t, older.Before(newer))
}

func TestUserCapabilities(t *testing.T) {
	u := User{Roles: []Role{RoleEndUser}}
	assert.False(t, u.HasCapability(RoleClientAdmin))

	roles := u.WithCapability(RoleClientAdmin)
	assert.ElementsMatch(t, []Role{RoleEndUser, RoleClientAdmin}, roles)
	assert.Len(t, u.Roles, 1)
	assert.Len(t, User{Roles: roles}.WithCapability(RoleEndUser), 2)
}

func TestMarkReadResultSucceeded(t *testing.T) {
	assert.True(t, MarkReadMarked.Succeeded())
	assert.True(t, MarkReadAlreadyRead.Succeeded())
	assert.False(t, MarkReadNotFound.Succeeded())
}
