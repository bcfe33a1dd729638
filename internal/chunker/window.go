package chunker

import "strings"

// window is one size-bounded slice of a larger text, located by byte
// offset within that text.
type window struct {
	Text       string
	ByteOffset int
}

// splitWindows breaks text into overlapping windows of at most size
// bytes, with the given overlap repeated between consecutive windows.
// Splits prefer a paragraph boundary ("\n\n"), then a line boundary
// ("\n"), then a word boundary, falling back to a hard cut only when
// none exist within the window. Windows always cover text without
// gaps: windows[i+1].ByteOffset <= windows[i].ByteOffset+len(windows[i].Text).
func splitWindows(text string, size, overlap int) []window {
	if text == "" {
		return nil
	}
	if overlap >= size {
		overlap = size / 4
	}
	if size <= 0 {
		size = 1000
	}

	var windows []window
	start := 0
	textLen := len(text)

	for start < textLen {
		end := start + size
		if end >= textLen {
			end = textLen
		} else {
			end = bestSplitPoint(text, start, end)
		}
		if end <= start {
			end = start + size
			if end > textLen {
				end = textLen
			}
		}

		windows = append(windows, window{
			Text:       text[start:end],
			ByteOffset: start,
		})

		if end >= textLen {
			break
		}

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return windows
}

// bestSplitPoint looks backward from end (bounded by start) for a
// paragraph, then line, then word boundary to cut on, returning end
// unchanged if none is found within a reasonable lookback window.
func bestSplitPoint(text string, start, end int) int {
	lookback := end - start/2
	if lookback > 200 {
		lookback = 200
	}
	lo := end - lookback
	if lo < start {
		lo = start
	}

	if idx := strings.LastIndex(text[lo:end], "\n\n"); idx >= 0 {
		return lo + idx + 2
	}
	if idx := strings.LastIndex(text[lo:end], "\n"); idx >= 0 {
		return lo + idx + 1
	}
	if idx := strings.LastIndex(text[lo:end], " "); idx >= 0 {
		return lo + idx + 1
	}
	return end
}
