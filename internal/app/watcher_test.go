package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treykane/infiniscroll/internal/calendar"
)

func TestWalkFileWatchEntriesSkipsHiddenAndNonNotes(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "2026-10.md"), "a")
	mustWriteFile(t, filepath.Join(root, "archive", "2025-01.MD"), "b")
	mustWriteFile(t, filepath.Join(root, "todo.txt"), "c")
	mustWriteFile(t, filepath.Join(root, ".2026-10.md.swp"), "d")
	mustWriteFile(t, filepath.Join(root, ".git", "2026-11.md"), "e")

	entries, err := walkFileWatchEntries(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, filepath.Join(root, "2026-10.md"), entries[0].Path, "entries should be sorted")
}

func TestScanFileWatchSnapshotMissingRootIsEmpty(t *testing.T) {
	snapshot, err := scanFileWatchSnapshot(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err, "missing root should be ignored")
	assert.Empty(t, snapshot)
}

func TestFileWatchSnapshotsEqual(t *testing.T) {
	base := fileWatchSnapshot{"a.md": {Path: "a.md", ModNano: 1, Size: 10}}

	cases := []struct {
		name  string
		other fileWatchSnapshot
		want  bool
	}{
		{name: "same", other: fileWatchSnapshot{"a.md": {Path: "a.md", ModNano: 1, Size: 10}}, want: true},
		{name: "modified", other: fileWatchSnapshot{"a.md": {Path: "a.md", ModNano: 2, Size: 10}}, want: false},
		{name: "resized", other: fileWatchSnapshot{"a.md": {Path: "a.md", ModNano: 1, Size: 11}}, want: false},
		{name: "renamed", other: fileWatchSnapshot{"b.md": {Path: "b.md", ModNano: 1, Size: 10}}, want: false},
		{name: "empty", other: fileWatchSnapshot{}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fileWatchSnapshotsEqual(base, tc.other))
		})
	}
}

func TestHandleFileWatchTickPrimesThenReloadsOnChange(t *testing.T) {
	m := newTestModel(t, nil)
	settle(t, m, 80, 40)
	note := filepath.Join(m.notesDir, "2026-10.md")
	mustWriteFile(t, note, "first\n")
	m.notes.Rendered("2026-10", 40)

	_, cmd := m.handleFileWatchTick(fileWatchTickMsg{})
	require.NotNil(t, cmd, "next poll should be scheduled")
	assert.True(t, m.fileWatchPrimed, "first tick should prime the snapshot")
	assert.Equal(t, "Ready", m.status, "priming tick should leave status alone")

	_, cmd = m.handleFileWatchTick(fileWatchTickMsg{})
	pump(t, m, cmd)
	assert.Equal(t, 0, m.reloads, "no reload without changes")

	mustWriteFile(t, note, "second, longer note\n")
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(note, future, future))
	_, cmd = m.handleFileWatchTick(fileWatchTickMsg{})
	pump(t, m, cmd)

	assert.Contains(t, m.notes.Rendered("2026-10", 40), "second")
	assert.Equal(t, 1, m.reloads, "one reload after a change on disk")
	assert.Equal(t, calendar.Month(0), centered(t, m))
}
