// Package journal keeps a durable append-only record of listing mutations.
// Each entry is one JSON line; the file survives restarts and can be
// replayed for auditing who changed which listing and when.
package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/juvenstu/real-estate-marketplace/pkg/logger"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Entry records a single listing mutation.
type Entry struct {
	ListingID string    `json:"listing_id"`
	UserID    string    `json:"user_id"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Journal manages the append-only mutation log.
type Journal struct {
	filePath string
	file     *os.File
	mu       sync.Mutex
}

// New opens (or creates) the journal file, creating parent directories as
// needed.
func New(filePath string) (*Journal, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &Journal{
		filePath: filePath,
		file:     file,
	}, nil
}

// Append writes one entry and syncs it to disk before returning.
func (j *Journal) Append(entry Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Log.Error("Journal: failed to marshal entry",
			zap.String("listing_id", entry.ListingID),
			zap.Error(err),
		)
		return err
	}

	if _, err := j.file.WriteString(string(data) + "\n"); err != nil {
		logger.Log.Error("Journal: failed to write entry",
			zap.String("listing_id", entry.ListingID),
			zap.Error(err),
		)
		return err
	}

	if err := j.file.Sync(); err != nil {
		logger.Log.Error("Journal: failed to sync to disk",
			zap.String("listing_id", entry.ListingID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// ReadAll replays every entry in the journal, oldest first. Corrupted lines
// are skipped.
func (j *Journal) ReadAll() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.readAllUnsafe()
}

// Compact drops entries older than the cutoff, rewriting the file
// atomically via a temp file so a crash mid-compaction cannot lose the
// surviving entries.
func (j *Journal) Compact(cutoff time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	allEntries, err := j.readAllUnsafe()
	if err != nil {
		return err
	}

	var remaining []Entry
	for _, entry := range allEntries {
		if !entry.Timestamp.Before(cutoff) {
			remaining = append(remaining, entry)
		}
	}

	if err := j.file.Close(); err != nil {
		return err
	}

	tempFile := j.filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	for _, entry := range remaining {
		data, _ := json.Marshal(entry)
		f.WriteString(string(data) + "\n")
	}

	f.Sync()
	f.Close()

	if err := os.Rename(tempFile, j.filePath); err != nil {
		return err
	}

	// Reopen with the same flags so subsequent appends land in the new file.
	newFile, err := os.OpenFile(j.filePath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	j.file = newFile

	logger.Log.Info("Journal: compaction completed",
		zap.Int("before_count", len(allEntries)),
		zap.Int("remaining_count", len(remaining)),
	)

	return nil
}

func (j *Journal) readAllUnsafe() ([]Entry, error) {
	file, err := os.Open(j.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

// Close closes the journal file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
