package domain

// LinkStatus describes where an account is in its linking lifecycle.
type LinkStatus string

const (
	LinkStatusUnlinked            LinkStatus = "UNLINKED"
	LinkStatusPendingVerification LinkStatus = "PENDING_VERIFICATION"
	LinkStatusLinked              LinkStatus = "LINKED"
)

// Account is a bank account that a portal user can link to their profile.
// Accounts are never deleted; unlinking only moves them back to UNLINKED.
type Account struct {
	AccountNumber string     `json:"accountNumber"` // Primary Key, externally assigned
	Last4SSN      string     `json:"-"`             // Verification only, never serialized
	LinkStatus    LinkStatus `json:"linkStatus"`
	OwnerUserID   string     `json:"ownerUserID,omitempty"` // Set only while LINKED
	Version       int64      `json:"version"`               // Bumped on every link transition
	AuditFields
}

// IsLinkedTo reports whether the account is currently linked to userID.
func (a Account) IsLinkedTo(userID string) bool {
	return a.LinkStatus == LinkStatusLinked && a.OwnerUserID == userID
}

// MaskedNumber returns the account number with all but the last four characters hidden.
func (a Account) MaskedNumber() string {
	return MaskAccountNumber(a.AccountNumber)
}

// MaskAccountNumber hides all but the last four characters of an account number.
func MaskAccountNumber(accountNumber string) string {
	runes := []rune(accountNumber)
	if len(runes) <= 4 {
		return "****"
	}
	return "****" + string(runes[len(runes)-4:])
}

// VerificationResult is the outcome of checking partial identity data against an account.
type VerificationResult string

const (
	VerificationMatch         VerificationResult = "MATCH"
	VerificationNoSuchAccount VerificationResult = "NO_SUCH_ACCOUNT"
	VerificationMismatch      VerificationResult = "MISMATCH"
)

// LinkResult is the outcome of a link request.
type LinkResult string

const (
	LinkResultLinked               LinkResult = "LINKED"
	LinkResultAlreadyLinkedToOther LinkResult = "ALREADY_LINKED_TO_OTHER"
	LinkResultAlreadyLinkedToSelf  LinkResult = "ALREADY_LINKED_TO_SELF"
)

// UnlinkResult is the outcome of an unlink request.
type UnlinkResult string

const (
	UnlinkResultUnlinked        UnlinkResult = "UNLINKED"
	UnlinkResultNotLinkedToUser UnlinkResult = "NOT_LINKED_TO_USER"
)

// LinkReceipt reports a link attempt. DegradedAudit is set when the transition
// was persisted but its audit entry could not be confirmed.
type LinkReceipt struct {
	Result        LinkResult `json:"result"`
	AuditEntryID  int64      `json:"auditEntryID,omitempty"`
	DegradedAudit bool       `json:"degradedAudit"`
}

// UnlinkReceipt reports an unlink attempt.
type UnlinkReceipt struct {
	Result        UnlinkResult `json:"result"`
	AuditEntryID  int64        `json:"auditEntryID,omitempty"`
	DegradedAudit bool         `json:"degradedAudit"`
}
