package cart

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuestEntry is one line of a client-held guest cart. EntryID is a
// client-generated uuid used as the idempotency key for the merge replay;
// entries without one are replayed unconditionally.
type GuestEntry struct {
	EntryID   string
	ProductID primitive.ObjectID
	Size      string
	Quantity  int
}

// MergeOutcome reports what happened to a single guest entry.
type MergeOutcome struct {
	EntryID string `json:"entryId,omitempty"`
	Merged  bool   `json:"merged"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MergeResult is the overall outcome of a guest-cart merge. Cleared tells
// the client whether it may drop its local guest cart: true only when every
// entry has been merged (or was already merged on an earlier attempt).
type MergeResult struct {
	Entries []MergeOutcome `json:"entries"`
	Cleared bool           `json:"cleared"`
}

// MergeGuest replays guest entries, in order, through Add. Add's
// summed-quantity upsert makes overlapping (productId, size) pairs merge
// naturally. Replay stops at the first failure: earlier merges stay applied
// and the failure is surfaced, but entries already recorded in the merge log
// are skipped on retry, so a partial-failure retry cannot double-count.
func (s *Service) MergeGuest(ctx context.Context, user primitive.ObjectID, entries []GuestEntry) (*MergeResult, error) {
	result := &MergeResult{Entries: []MergeOutcome{}}

	merged, err := s.mergeLog.Merged(ctx, user)
	if err != nil {
		return nil, err
	}
	s.pruneRetired(ctx, user, merged, entries)

	if len(entries) == 0 {
		result.Cleared = true
		return result, nil
	}

	for _, entry := range entries {
		outcome := MergeOutcome{EntryID: entry.EntryID}

		if entry.EntryID != "" && merged[entry.EntryID] {
			outcome.Merged = true
			outcome.Skipped = true
			result.Entries = append(result.Entries, outcome)
			continue
		}

		quantity := entry.Quantity
		if quantity < 1 {
			quantity = 1
		}
		if _, err := s.Add(ctx, user, entry.ProductID, entry.Size, quantity); err != nil {
			outcome.Error = err.Error()
			result.Entries = append(result.Entries, outcome)
			return result, err
		}
		outcome.Merged = true

		if entry.EntryID != "" {
			if err := s.mergeLog.Record(ctx, user, entry.EntryID); err != nil {
				// The merge itself succeeded; a retry may re-add this entry.
				slog.Warn("cart: failed to record merged guest entry",
					"user", user.Hex(), "entryId", entry.EntryID, "err", err)
			}
		}
		result.Entries = append(result.Entries, outcome)
	}

	result.Cleared = true
	return result, nil
}

// pruneRetired forgets logged entry ids the client no longer sends. The
// client keeps its guest cart until a merge reports cleared, so an id absent
// from the request can never be replayed again and its record is dead
// weight. Ids still present stay recorded: a retry after a lost response
// must keep skipping them.
func (s *Service) pruneRetired(ctx context.Context, user primitive.ObjectID, merged map[string]bool, entries []GuestEntry) {
	incoming := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.EntryID != "" {
			incoming[e.EntryID] = true
		}
	}
	var stale []string
	for id := range merged {
		if !incoming[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return
	}
	if err := s.mergeLog.Remove(ctx, user, stale); err != nil {
		slog.Warn("cart: failed to prune merge log", "user", user.Hex(), "err", err)
	}
}
