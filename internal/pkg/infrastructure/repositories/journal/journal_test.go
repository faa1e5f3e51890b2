package journal

import (
	"context"
	"testing"
	"time"

	"github.com/fieldwatch/emergency-monitor/pkg/types"
	"github.com/matryer/is"
)

func TestAddAndGetLatest(t *testing.T) {
	is, ctx, j := testSetup(t)

	err := j.Add(ctx, types.JournalEntry{
		UserID:     "user-1",
		UserName:   "Maria Lindgren",
		Entry:      types.JournalEntryRaised,
		ObservedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	is.NoErr(err)

	err = j.Add(ctx, types.JournalEntry{
		UserID:     "user-1",
		UserName:   "Maria Lindgren",
		Entry:      types.JournalEntryResolved,
		ObservedAt: time.Date(2025, 3, 1, 12, 5, 0, 0, time.UTC),
	})
	is.NoErr(err)

	entries, err := j.GetLatest(ctx, 10)
	is.NoErr(err)
	is.Equal(len(entries), 2)
	is.Equal(entries[0].Entry, types.JournalEntryResolved) // newest first
}

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	is, ctx, j := testSetup(t)

	err := j.Add(ctx, types.JournalEntry{
		UserID: "user-2",
		Entry:  types.JournalEntryRaised,
	})
	is.NoErr(err)

	entries, err := j.GetByUserID(ctx, "user-2")
	is.NoErr(err)
	is.Equal(len(entries), 1)
	is.True(entries[0].ID != "")
	is.True(!entries[0].ObservedAt.IsZero())
}

func TestGetByUserIDFiltersOtherUsers(t *testing.T) {
	is, ctx, j := testSetup(t)

	is.NoErr(j.Add(ctx, types.JournalEntry{UserID: "user-1", Entry: types.JournalEntryRaised}))
	is.NoErr(j.Add(ctx, types.JournalEntry{UserID: "user-2", Entry: types.JournalEntryRaised}))

	entries, err := j.GetByUserID(ctx, "user-1")
	is.NoErr(err)
	is.Equal(len(entries), 1)
	is.Equal(entries[0].UserID, "user-1")
}

func TestGetByUserIDWithoutEntriesReturnsEmptySlice(t *testing.T) {
	is, ctx, j := testSetup(t)

	entries, err := j.GetByUserID(ctx, "unknown-user")
	is.NoErr(err)
	is.Equal(len(entries), 0)
}

func testSetup(t *testing.T) (*is.I, context.Context, Journal) {
	is := is.New(t)

	j, err := New(NewSQLiteConnector(""))
	is.NoErr(err)

	return is, context.Background(), j
}
