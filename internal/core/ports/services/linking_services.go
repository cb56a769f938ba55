package services

import (
	"context"

	"github.com/SscSPs/banking_portal/internal/core/domain"
)

// LinkingSvc orchestrates the verify then link workflow for a user.
type LinkingSvc interface {
	// LinkAccount runs one linking episode. Expected failures are reported in the outcome.
	LinkAccount(ctx context.Context, userID, accountNumber, last4SSN string) (domain.LinkingOutcome, error)

	// UnlinkAccount ends the current linking episode for the pair.
	UnlinkAccount(ctx context.Context, userID, accountNumber string) (domain.UnlinkingOutcome, error)

	// EpisodeState reports the last known episode state for the pair.
	EpisodeState(userID, accountNumber string) (domain.EpisodeState, bool)
}
