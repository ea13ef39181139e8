package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdityaGupta2791/E-com/apperr"
)

func TestMergeGuestIntoEmptyCart(t *testing.T) {
	f := newFixture(t)
	pid := f.seedProduct(t, 10, "M", "L")
	ctx := context.Background()

	entries := []GuestEntry{
		{EntryID: uuid.NewString(), ProductID: pid, Size: "M", Quantity: 1},
		{EntryID: uuid.NewString(), ProductID: pid, Size: "L", Quantity: 2},
	}
	result, err := f.svc.MergeGuest(ctx, f.user, entries)
	require.NoError(t, err)
	assert.True(t, result.Cleared)
	require.Len(t, result.Entries, 2)
	for _, e := range result.Entries {
		assert.True(t, e.Merged)
		assert.False(t, e.Skipped)
	}

	cart, err := f.svc.Get(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, cart.Products, 2)
}

func TestMergeSumsWithExistingServerEntries(t *testing.T) {
	f := newFixture(t)
	pid := f.seedProduct(t, 10, "M")
	ctx := context.Background()

	_, err := f.svc.Add(ctx, f.user, pid, "M", 2)
	require.NoError(t, err)

	result, err := f.svc.MergeGuest(ctx, f.user, []GuestEntry{
		{EntryID: uuid.NewString(), ProductID: pid, Size: "M", Quantity: 3},
	})
	require.NoError(t, err)
	assert.True(t, result.Cleared)

	cart, err := f.svc.Get(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, 5, cart.Products[0].Quantity)
}

func TestMergePartialFailureKeepsEarlierMerges(t *testing.T) {
	f := newFixture(t)
	good := f.seedProduct(t, 10, "M")
	scarce := f.seedProduct(t, 1, "M")
	ctx := context.Background()

	entries := []GuestEntry{
		{EntryID: uuid.NewString(), ProductID: good, Size: "M", Quantity: 2},
		{EntryID: uuid.NewString(), ProductID: scarce, Size: "M", Quantity: 5},
		{EntryID: uuid.NewString(), ProductID: good, Size: "M", Quantity: 1},
	}
	result, err := f.svc.MergeGuest(ctx, f.user, entries)
	require.Error(t, err)
	assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))
	assert.False(t, result.Cleared)
	require.Len(t, result.Entries, 2)
	assert.True(t, result.Entries[0].Merged)
	assert.False(t, result.Entries[1].Merged)
	assert.NotEmpty(t, result.Entries[1].Error)

	// the first entry stayed applied
	cart, err := f.svc.Get(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, 2, cart.Products[0].Quantity)
}

func TestMergeRetrySkipsAlreadyMergedEntries(t *testing.T) {
	f := newFixture(t)
	good := f.seedProduct(t, 10, "M")
	scarce := f.seedProduct(t, 1, "M")
	ctx := context.Background()

	entries := []GuestEntry{
		{EntryID: uuid.NewString(), ProductID: good, Size: "M", Quantity: 2},
		{EntryID: uuid.NewString(), ProductID: scarce, Size: "M", Quantity: 5},
	}
	_, err := f.svc.MergeGuest(ctx, f.user, entries)
	require.Error(t, err)

	// fix the failing entry and retry the whole guest cart
	entries[1].Quantity = 1
	result, err := f.svc.MergeGuest(ctx, f.user, entries)
	require.NoError(t, err)
	assert.True(t, result.Cleared)
	assert.True(t, result.Entries[0].Skipped)
	assert.False(t, result.Entries[1].Skipped)

	// the first entry was not double-counted
	cart, err := f.svc.Get(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, cart.Products, 2)
	for _, e := range cart.Products {
		switch e.ProductID {
		case good:
			assert.Equal(t, 2, e.Quantity)
		case scarce:
			assert.Equal(t, 1, e.Quantity)
		}
	}
}

func TestMergeEntriesWithoutIDReplayUnconditionally(t *testing.T) {
	f := newFixture(t)
	pid := f.seedProduct(t, 10, "M")
	ctx := context.Background()

	entries := []GuestEntry{{ProductID: pid, Size: "M", Quantity: 1}}

	_, err := f.svc.MergeGuest(ctx, f.user, entries)
	require.NoError(t, err)
	_, err = f.svc.MergeGuest(ctx, f.user, entries)
	require.NoError(t, err)

	// no idempotency key, so the second replay adds again
	cart, err := f.svc.Get(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, 2, cart.Products[0].Quantity)
}

func TestMergeEmptyGuestCart(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.MergeGuest(context.Background(), f.user, nil)
	require.NoError(t, err)
	assert.True(t, result.Cleared)
	assert.Empty(t, result.Entries)
}

// Entry ids the client stopped sending are dropped from the merge log, so a
// user's log holds at most the ids of their current guest cart instead of
// every id ever merged.
func TestMergePrunesRetiredEntryIDs(t *testing.T) {
	f := newFixture(t)
	pid := f.seedProduct(t, 10, "M", "L")
	ctx := context.Background()

	old := []GuestEntry{
		{EntryID: uuid.NewString(), ProductID: pid, Size: "M", Quantity: 1},
		{EntryID: uuid.NewString(), ProductID: pid, Size: "L", Quantity: 1},
	}
	result, err := f.svc.MergeGuest(ctx, f.user, old)
	require.NoError(t, err)
	require.True(t, result.Cleared)

	// next login merges a fresh guest cart; the old ids are gone for good
	fresh := GuestEntry{EntryID: uuid.NewString(), ProductID: pid, Size: "M", Quantity: 1}
	_, err = f.svc.MergeGuest(ctx, f.user, []GuestEntry{fresh})
	require.NoError(t, err)

	merged, err := f.mergeLog.Merged(ctx, f.user)
	require.NoError(t, err)
	assert.False(t, merged[old[0].EntryID])
	assert.False(t, merged[old[1].EntryID])
	assert.True(t, merged[fresh.EntryID])
}

// A fully merged cart replayed unchanged (the cleared response never reached
// the client) must skip every entry rather than prune and re-add it.
func TestMergeRetryAfterLostResponseStillSkips(t *testing.T) {
	f := newFixture(t)
	pid := f.seedProduct(t, 10, "M")
	ctx := context.Background()

	entries := []GuestEntry{{EntryID: uuid.NewString(), ProductID: pid, Size: "M", Quantity: 2}}
	_, err := f.svc.MergeGuest(ctx, f.user, entries)
	require.NoError(t, err)

	result, err := f.svc.MergeGuest(ctx, f.user, entries)
	require.NoError(t, err)
	assert.True(t, result.Cleared)
	require.Len(t, result.Entries, 1)
	assert.True(t, result.Entries[0].Skipped)

	cart, err := f.svc.Get(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, 2, cart.Products[0].Quantity)
}

func TestMergeEmptyGuestCartClearsLog(t *testing.T) {
	f := newFixture(t)
	pid := f.seedProduct(t, 10, "M")
	ctx := context.Background()

	entry := GuestEntry{EntryID: uuid.NewString(), ProductID: pid, Size: "M", Quantity: 1}
	_, err := f.svc.MergeGuest(ctx, f.user, []GuestEntry{entry})
	require.NoError(t, err)

	_, err = f.svc.MergeGuest(ctx, f.user, nil)
	require.NoError(t, err)

	merged, err := f.mergeLog.Merged(ctx, f.user)
	require.NoError(t, err)
	assert.Empty(t, merged)
}

func TestMergeDefaultsQuantityToOne(t *testing.T) {
	f := newFixture(t)
	pid := f.seedProduct(t, 10, "M")
	ctx := context.Background()

	_, err := f.svc.MergeGuest(ctx, f.user, []GuestEntry{
		{EntryID: uuid.NewString(), ProductID: pid, Size: "M"},
	})
	require.NoError(t, err)

	cart, err := f.svc.Get(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, cart.Products, 1)
	assert.Equal(t, 1, cart.Products[0].Quantity)
}
