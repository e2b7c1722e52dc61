package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// noteEntry is one rendered note together with the inputs that produced it.
type noteEntry struct {
	mtime   time.Time
	width   int
	content string
}

// noteCache renders <dir>/<YYYY-MM>.md notes on demand. The refresh hook
// clears it from a background goroutine, so access is locked.
type noteCache struct {
	mu      sync.Mutex
	dir     string
	style   string
	entries map[string]noteEntry
}

func newNoteCache(dir, style string) *noteCache {
	return &noteCache{dir: dir, style: style, entries: map[string]noteEntry{}}
}

// notePath returns the file holding the note for a YYYY-MM key.
func (c *noteCache) notePath(key string) string {
	return filepath.Join(c.dir, key+NoteExtension)
}

// Rendered returns the month's note rendered to fit width, or "" when no
// note exists.
func (c *noteCache) Rendered(key string, width int) string {
	path := c.notePath(key)
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			appLog.Warn("stat month note", "path", path, "error", err)
		}
		return ""
	}
	bucket := renderWidthBucket(width)

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && entry.width == bucket && entry.mtime.Equal(info.ModTime()) {
		return entry.content
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		appLog.Warn("read month note", "path", path, "error", err)
		return ""
	}
	content := renderMarkdown(string(raw), bucket, c.style)

	c.mu.Lock()
	c.entries[key] = noteEntry{mtime: info.ModTime(), width: bucket, content: content}
	c.mu.Unlock()
	return content
}

// Clear drops every rendered note.
func (c *noteCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]noteEntry{}
}

// Len returns the number of cached notes.
func (c *noteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
