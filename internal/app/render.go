// render.go renders month notes through Glamour.
//
// Every month card may carry a journal note, so a single layout pass can
// render a dozen notes. Two caches keep that cheap:
//
// # Note cache
//
// Rendered notes are cached per month key (see notes.go). An entry records
// the note file's modification time and the width bucket it was rendered at;
// a hit requires both to match. The watcher and the refresh hook clear the
// cache when the notes directory changes.
//
// # Glamour renderers
//
// Glamour TermRenderer instances are cached per style and width bucket in a
// global LRU protected by a mutex. Creating a renderer parses style JSON and
// allocates internal buffers, so reusing them across renders avoids repeated
// setup.
package app

import (
	"container/list"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type rendererKey struct {
	style string
	width int
}

var (
	// maxRendererCacheEntries bounds the number of Glamour renderers
	// retained in memory.
	maxRendererCacheEntries = 8

	rendererCacheMu    sync.Mutex
	rendererCache      = map[rendererKey]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
)

// renderMarkdown converts raw markdown to ANSI output wrapped at width. If
// the renderer cannot be created or rendering fails, the raw markdown is
// returned so the note still shows up unformatted.
func renderMarkdown(content string, width int, style string) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(style, width)
	if err != nil {
		appLog.Error("create markdown renderer", "width", width, "style", style, "error", err)
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		appLog.Error("render markdown content", "width", width, "error", err)
		return content
	}
	return strings.Trim(out, "\n")
}

// getRenderer returns a cached Glamour TermRenderer for style and width,
// creating one if it doesn't exist.
func getRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := rendererKey{style: style, width: width}
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if renderer, ok := rendererCache[key]; ok {
		if node, ok := rendererCacheNodes[key]; ok {
			rendererCacheOrder.MoveToBack(node)
		}
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[key] = renderer
	rendererCacheNodes[key] = rendererCacheOrder.PushBack(key)
	evictOldestRendererIfNeeded()
	return renderer, nil
}

func evictOldestRendererIfNeeded() {
	for len(rendererCache) > maxRendererCacheEntries && rendererCacheOrder.Len() > 0 {
		oldest := rendererCacheOrder.Front()
		key, _ := oldest.Value.(rendererKey)
		rendererCacheOrder.Remove(oldest)
		delete(rendererCache, key)
		delete(rendererCacheNodes, key)
	}
}

func resetRendererCacheForTests() {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	rendererCache = map[rendererKey]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
}

// glamourStyleOption maps the configured style name onto a Glamour option.
//
// "auto" delegates to Glamour's detection, which queries the terminal's
// background color. dark, light and notty are passed through; anything else
// falls back to dark.
func glamourStyleOption(style string) glamour.TermRendererOption {
	switch style {
	case "auto":
		return glamour.WithAutoStyle()
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}

// renderWidthBucket buckets widths so the cache is more reusable.
func renderWidthBucket(width int) int {
	if width <= 0 {
		return 80
	}
	if width < RenderWidthBucket {
		return width
	}
	return (width / RenderWidthBucket) * RenderWidthBucket
}
