package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	return decodeFields(token, -1)
}

// decodeFields splits into at most n fields; the last one keeps any further separators.
func decodeFields(token string, n int) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	return strings.SplitN(string(decodedBytes), "|", n), nil
}

// EncodeAuditCursor creates a token resuming an audit query after the given entry.
func EncodeAuditCursor(c domain.AuditCursor) string {
	return EncodeMultiFieldToken(c.Timestamp.UTC().Format(timeFormat), strconv.FormatInt(c.EntryID, 10))
}

// DecodeAuditCursor parses a token produced by EncodeAuditCursor.
func DecodeAuditCursor(token string) (domain.AuditCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return domain.AuditCursor{}, err
	}
	if len(parts) != 2 {
		return domain.AuditCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	ts, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return domain.AuditCursor{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}

	entryID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return domain.AuditCursor{}, fmt.Errorf("invalid pagination token format (entry id parse): %w", err)
	}

	return domain.AuditCursor{Timestamp: ts, EntryID: entryID}, nil
}

// EncodeStatementCursor creates a token resuming a statement search after the given statement.
func EncodeStatementCursor(c domain.StatementCursor) string {
	return EncodeMultiFieldToken(c.StatementDate.UTC().Format(timeFormat), c.StatementID)
}

// DecodeStatementCursor parses a token produced by EncodeStatementCursor.
// Statement ids are free text, so only the first separator is significant.
func DecodeStatementCursor(token string) (domain.StatementCursor, error) {
	parts, err := decodeFields(token, 2)
	if err != nil {
		return domain.StatementCursor{}, err
	}
	if len(parts) != 2 || parts[1] == "" {
		return domain.StatementCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return domain.StatementCursor{}, fmt.Errorf("invalid pagination token format (statement date parse): %w", err)
	}

	return domain.StatementCursor{StatementDate: date, StatementID: parts[1]}, nil
}
