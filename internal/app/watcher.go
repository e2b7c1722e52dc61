// watcher.go polls the notes directory for external changes.
//
// Month notes are plain files that may be edited by any tool, so the app
// cannot rely on being told about changes. Instead:
//
//  1. Every configured poll interval (default: 2 s), walk the notes directory
//     and capture a snapshot of every note file: path, modification time
//     (nanoseconds) and size.
//  2. Compare the new snapshot to the previous one. If anything differs
//     (note added, removed, modified, or resized), clear the note cache and
//     raise the carousel's reload signal so it re-centers on the current month
//     with fresh cards.
//
// Hidden files and directories are excluded so editor swap files do not
// trigger spurious reloads. A missing notes directory is an empty snapshot.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fileWatchTickMsg is the Bubble Tea message emitted by the periodic poll timer.
type fileWatchTickMsg struct{}

// fileWatchEntry records the observable attributes of a single note file.
// UnixNano keeps equality comparison trivial.
type fileWatchEntry struct {
	Path    string
	ModNano int64
	Size    int64
}

// fileWatchSnapshot is a map from absolute path to its observed attributes.
type fileWatchSnapshot map[string]fileWatchEntry

// scheduleFileWatchTick queues the next poll after the configured interval.
func (m *Model) scheduleFileWatchTick() tea.Cmd {
	return tea.Tick(m.effectiveFileWatchInterval(), func(time.Time) tea.Msg {
		return fileWatchTickMsg{}
	})
}

func (m *Model) effectiveFileWatchInterval() time.Duration {
	if m.fileWatchInterval <= 0 {
		return DefaultFileWatchInterval
	}
	return m.fileWatchInterval
}

// handleFileWatchTick compares a fresh snapshot with the last one. The first
// tick only records the baseline. The next poll is always scheduled.
func (m *Model) handleFileWatchTick(_ fileWatchTickMsg) (tea.Model, tea.Cmd) {
	snapshot, err := scanFileWatchSnapshot(m.notesDir)
	if err != nil {
		appLog.Warn("scan filesystem watcher", "root", m.notesDir, "error", err)
		return m, m.scheduleFileWatchTick()
	}

	if !m.fileWatchPrimed {
		m.fileWatchPrimed = true
		m.fileWatchSnapshot = snapshot
		return m, m.scheduleFileWatchTick()
	}

	if !fileWatchSnapshotsEqual(m.fileWatchSnapshot, snapshot) {
		m.fileWatchSnapshot = snapshot
		cmd := m.handleExternalNotesChange()
		return m, tea.Batch(cmd, m.scheduleFileWatchTick())
	}
	return m, m.scheduleFileWatchTick()
}

// scanFileWatchSnapshot walks root and returns a snapshot of every note.
func scanFileWatchSnapshot(root string) (fileWatchSnapshot, error) {
	snapshot := make(fileWatchSnapshot)
	entries, err := walkFileWatchEntries(root)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		snapshot[entry.Path] = entry
	}
	return snapshot, nil
}

// walkFileWatchEntries collects a fileWatchEntry for every visible note
// under root, sorted by path.
func walkFileWatchEntries(root string) ([]fileWatchEntry, error) {
	entries := make([]fileWatchEntry, 0, 32)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root && errors.Is(walkErr, os.ErrNotExist) {
				return filepath.SkipDir
			}
			return walkErr
		}
		if path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), NoteExtension) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, fileWatchEntry{
			Path:    path,
			ModNano: info.ModTime().UnixNano(),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk notes dir %q: %w", root, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}

// fileWatchSnapshotsEqual returns true when two snapshots contain exactly the
// same set of paths with identical modification times and sizes.
func fileWatchSnapshotsEqual(left, right fileWatchSnapshot) bool {
	if len(left) != len(right) {
		return false
	}
	for path, leftEntry := range left {
		rightEntry, ok := right[path]
		if !ok {
			return false
		}
		if leftEntry.ModNano != rightEntry.ModNano || leftEntry.Size != rightEntry.Size {
			return false
		}
	}
	return true
}

// handleExternalNotesChange drops rendered notes and raises the reload
// signal so every card is rebuilt around the current month.
func (m *Model) handleExternalNotesChange() tea.Cmd {
	m.notes.Clear()
	m.status = "Auto-reloaded (notes changed on disk)"
	appLog.Info("notes changed on disk", "root", m.notesDir)
	return tea.Batch(m.carousel.Invalidate(), m.carousel.Reload())
}
