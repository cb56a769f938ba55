package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeAuditCursor(t *testing.T) {
	// Standard values with nanosecond precision
	cursor := domain.AuditCursor{
		Timestamp: time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC),
		EntryID:   42,
	}

	token := EncodeAuditCursor(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeAuditCursor(token)
	require.NoError(t, err, "Decoding should not return an error")
	assert.True(t, cursor.Timestamp.Equal(decoded.Timestamp), "Timestamp should match after decode")
	assert.Equal(t, cursor.EntryID, decoded.EntryID)

	// Non-UTC input comes back as the same instant
	loc := time.FixedZone("UTC+5", 5*60*60)
	local := domain.AuditCursor{Timestamp: time.Date(2024, 1, 1, 5, 0, 0, 0, loc), EntryID: 1}
	decoded, err = DecodeAuditCursor(EncodeAuditCursor(local))
	require.NoError(t, err)
	assert.True(t, local.Timestamp.Equal(decoded.Timestamp))
}

func TestDecodeAuditCursorInvalid(t *testing.T) {
	_, err := DecodeAuditCursor("%%%not-base64")
	assert.Error(t, err, "Invalid base64 should fail")

	_, err = DecodeAuditCursor(base64.URLEncoding.EncodeToString([]byte("only-one-part")))
	assert.Error(t, err, "Single field should fail")

	_, err = DecodeAuditCursor(EncodeMultiFieldToken("not-a-time", "1"))
	assert.Error(t, err, "Bad timestamp should fail")

	_, err = DecodeAuditCursor(EncodeMultiFieldToken(time.Now().UTC().Format(timeFormat), "abc"))
	assert.Error(t, err, "Bad entry id should fail")
}

func TestEncodeDecodeStatementCursor(t *testing.T) {
	cursor := domain.StatementCursor{
		StatementDate: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		StatementID:   "stmt-2024-06",
	}

	decoded, err := DecodeStatementCursor(EncodeStatementCursor(cursor))
	require.NoError(t, err)
	assert.True(t, cursor.StatementDate.Equal(decoded.StatementDate))
	assert.Equal(t, cursor.StatementID, decoded.StatementID)

	_, err = DecodeStatementCursor(EncodeMultiFieldToken(cursor.StatementDate.Format(timeFormat), ""))
	assert.Error(t, err, "Empty statement id should fail")
}

func TestStatementCursorWithSeparatorInID(t *testing.T) {
	for _, id := range []string{"ST|3", "a|b|c", "trailing|"} {
		cursor := domain.StatementCursor{
			StatementDate: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			StatementID:   id,
		}
		decoded, err := DecodeStatementCursor(EncodeStatementCursor(cursor))
		require.NoError(t, err, id)
		assert.Equal(t, id, decoded.StatementID)
		assert.True(t, cursor.StatementDate.Equal(decoded.StatementDate))
	}
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")
	parts, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, parts)
}
