package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWidthBucket(t *testing.T) {
	cases := map[int]int{
		0:   80,
		-3:  80,
		12:  12,
		20:  20,
		39:  20,
		81:  80,
		119: 100,
	}
	for in, want := range cases {
		assert.Equal(t, want, renderWidthBucket(in), "renderWidthBucket(%d)", in)
	}
}

func TestGetRendererEvictsLeastRecentlyUsed(t *testing.T) {
	resetRendererCacheForTests()
	t.Cleanup(resetRendererCacheForTests)
	prev := maxRendererCacheEntries
	maxRendererCacheEntries = 2
	t.Cleanup(func() { maxRendererCacheEntries = prev })

	for _, width := range []int{20, 40} {
		_, err := getRenderer("notty", width)
		require.NoError(t, err, "width %d", width)
	}
	// Touch 20 so 40 becomes the oldest.
	_, err := getRenderer("notty", 20)
	require.NoError(t, err)
	_, err = getRenderer("notty", 60)
	require.NoError(t, err)

	assert.Len(t, rendererCache, 2)
	assert.NotContains(t, rendererCache, rendererKey{style: "notty", width: 40}, "oldest renderer should be evicted")
	assert.Contains(t, rendererCache, rendererKey{style: "notty", width: 20}, "recently used renderer should survive")
}

func TestRenderMarkdownTrimsNewlines(t *testing.T) {
	out := renderMarkdown("plain text", 40, "notty")
	assert.False(t, strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n"), "output not trimmed: %q", out)
	assert.Contains(t, out, "plain text")
}

func TestNoteCacheMissingNoteRendersEmpty(t *testing.T) {
	c := newNoteCache(t.TempDir(), "notty")
	assert.Empty(t, c.Rendered("2026-10", 40))
	assert.Equal(t, 0, c.Len())
}

func TestNoteCacheUsesEntryWhenMtimeAndWidthMatch(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "2026-10.md")
	mustWriteFile(t, path, "original\n")
	info, err := os.Stat(path)
	require.NoError(t, err)

	c := newNoteCache(root, "notty")
	c.entries["2026-10"] = noteEntry{mtime: info.ModTime(), width: 40, content: "cached-render-output"}

	assert.Equal(t, "cached-render-output", c.Rendered("2026-10", 41), "same width bucket should hit the cache")
}

func TestNoteCacheRerendersOnWidthOrMtimeChange(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "2026-10.md")
	mustWriteFile(t, path, "original\n")
	info, err := os.Stat(path)
	require.NoError(t, err)

	c := newNoteCache(root, "notty")
	c.entries["2026-10"] = noteEntry{mtime: info.ModTime(), width: 40, content: "stale"}

	assert.Contains(t, c.Rendered("2026-10", 60), "original", "new width should re-render")

	mustWriteFile(t, path, "edited\n")
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))
	assert.Contains(t, c.Rendered("2026-10", 60), "edited", "edit should re-render")

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
