package domain

// EpisodeState is the state of one linking episode for a (user, account) pair.
type EpisodeState string

const (
	EpisodeInitiated EpisodeState = "INITIATED"
	EpisodeVerified  EpisodeState = "VERIFIED"
	EpisodeLinked    EpisodeState = "LINKED"
	EpisodeFailed    EpisodeState = "FAILED"
	EpisodeUnlinked  EpisodeState = "UNLINKED"
)

// IsTerminal reports whether no further transition is possible within the episode.
func (s EpisodeState) IsTerminal() bool {
	return s == EpisodeFailed || s == EpisodeUnlinked
}

// FailureReason explains why an episode ended in FAILED.
type FailureReason string

const (
	FailureNone          FailureReason = ""
	FailureMismatch      FailureReason = "MISMATCH"
	FailureNoSuchAccount FailureReason = "NO_SUCH_ACCOUNT"
	FailureConflict      FailureReason = "CONFLICT"
)

// LinkingOutcome is what the linking workflow reports back to its caller.
type LinkingOutcome struct {
	State         EpisodeState       `json:"state"`
	Verification  VerificationResult `json:"verification"`
	LinkResult    LinkResult         `json:"linkResult,omitempty"`
	FailureReason FailureReason      `json:"failureReason,omitempty"`
	// DegradedAudit is set when a state change stands but its audit entry is unconfirmed.
	DegradedAudit bool `json:"degradedAudit"`
}

// UnlinkingOutcome is what the unlink workflow reports back to its caller.
type UnlinkingOutcome struct {
	State         EpisodeState `json:"state"`
	Result        UnlinkResult `json:"result"`
	DegradedAudit bool         `json:"degradedAudit"`
}
