package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/juvenstu/real-estate-marketplace/pkg/logger"
)

func newTestJournal(t *testing.T) *Journal {
	logger.Init(false)

	path := filepath.Join(t.TempDir(), "journal.log")
	j, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournal_AppendAndReadAll(t *testing.T) {
	j := newTestJournal(t)

	entries := []Entry{
		{ListingID: "listing1", UserID: "owner1", Action: ActionCreated, Timestamp: time.Now()},
		{ListingID: "listing1", UserID: "owner1", Action: ActionUpdated, Timestamp: time.Now()},
		{ListingID: "listing2", UserID: "owner2", Action: ActionCreated, Timestamp: time.Now()},
	}

	for _, entry := range entries {
		if err := j.Append(entry); err != nil {
			t.Fatalf("Failed to append entry: %v", err)
		}
	}

	replayed, err := j.ReadAll()
	if err != nil {
		t.Fatalf("Failed to read journal: %v", err)
	}
	if len(replayed) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(replayed))
	}
	for i, entry := range replayed {
		if entry.ListingID != entries[i].ListingID || entry.Action != entries[i].Action {
			t.Fatalf("Entry %d mismatch: got %+v", i, entry)
		}
	}
}

func TestJournal_SurvivesReopen(t *testing.T) {
	logger.Init(false)

	path := filepath.Join(t.TempDir(), "journal.log")
	j, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create journal: %v", err)
	}

	if err := j.Append(Entry{ListingID: "listing1", UserID: "owner1", Action: ActionCreated, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("Failed to reopen journal: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.ReadAll()
	if err != nil {
		t.Fatalf("Failed to read reopened journal: %v", err)
	}
	if len(entries) != 1 || entries[0].ListingID != "listing1" {
		t.Fatalf("Unexpected entries after reopen: %+v", entries)
	}
}

func TestJournal_AppendAfterCompact(t *testing.T) {
	j := newTestJournal(t)

	old := time.Now().Add(-48 * time.Hour)
	recent := time.Now()

	stale := []Entry{
		{ListingID: "listing1", UserID: "owner1", Action: ActionCreated, Timestamp: old},
		{ListingID: "listing1", UserID: "owner1", Action: ActionDeleted, Timestamp: old},
	}
	fresh := Entry{ListingID: "listing2", UserID: "owner2", Action: ActionCreated, Timestamp: recent}

	for _, entry := range stale {
		if err := j.Append(entry); err != nil {
			t.Fatalf("Failed to append: %v", err)
		}
	}
	if err := j.Append(fresh); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	// Drop everything older than a day
	if err := j.Compact(time.Now().Add(-24 * time.Hour)); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}

	remaining, err := j.ReadAll()
	if err != nil {
		t.Fatalf("Failed to read after compact: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ListingID != "listing2" {
		t.Fatalf("Expected only listing2 after compact, got %+v", remaining)
	}

	// Appends after compaction must land in the rewritten file
	if err := j.Append(Entry{ListingID: "listing3", UserID: "owner3", Action: ActionCreated, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Failed to append after compact: %v", err)
	}

	final, err := j.ReadAll()
	if err != nil {
		t.Fatalf("Failed to read journal: %v", err)
	}
	if len(final) != 2 {
		t.Fatalf("Expected 2 entries after post-compact append, got %d", len(final))
	}
	if final[0].ListingID != "listing2" || final[1].ListingID != "listing3" {
		t.Fatalf("Unexpected order after compact: %+v", final)
	}
}
