package chunker

import (
	"strings"
	"unicode/utf8"
)

// Separators ordered from "best" to "worst" for semantic meaning. A larger
// unit is never cut while a smaller boundary exists inside the size budget;
// the character-level hard split is the last resort.
var separators = []string{"\n\n", "\n", ". ", " "}

type Chunker struct {
	size    int
	overlap int
}

// New returns a splitter producing segments of at most size bytes where
// consecutive segments share up to overlap trailing/leading bytes.
func New(size int, overlap int) Chunker {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}
	return Chunker{size: size, overlap: overlap}
}

// Chunk splits text into ordered overlapping segments. It is a pure function
// of the input and the configured limits: same text in, same chunks out.
func (c Chunker) Chunk(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= c.size {
		return []string{text}
	}
	return c.split(text, separators)
}

func (c Chunker) split(text string, seps []string) []string {
	if len(text) <= c.size {
		return []string{text}
	}

	sep := ""
	var next []string
	found := false
	for i, s := range seps {
		if strings.Contains(text, s) {
			sep = s
			next = seps[i+1:]
			found = true
			break
		}
	}
	if !found {
		return c.hardSplit(text)
	}

	parts := strings.Split(text, sep)

	var chunks []string
	var pending []string
	for _, part := range parts {
		if len(part) <= c.size {
			pending = append(pending, part)
			continue
		}
		// An oversized part: flush what we have, then descend one separator
		// level for this part alone.
		chunks = append(chunks, c.merge(pending, sep)...)
		pending = nil
		chunks = append(chunks, c.split(part, next)...)
	}
	chunks = append(chunks, c.merge(pending, sep)...)
	return chunks
}

// merge packs consecutive parts into chunks of at most size bytes, joined by
// the separator they were split on. When a chunk is emitted, trailing parts
// are carried into the next chunk until the carried tail fits the overlap
// budget.
func (c Chunker) merge(parts []string, sep string) []string {
	if len(parts) == 0 {
		return nil
	}
	sepLen := len(sep)

	var chunks []string
	var window []string
	total := 0

	for _, part := range parts {
		partLen := len(part)
		joinLen := 0
		if len(window) > 0 {
			joinLen = sepLen
		}

		if total+partLen+joinLen > c.size && total > 0 {
			if chunk := strings.Join(window, sep); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for total > c.overlap || (total+partLen+joinLen > c.size && total > 0) {
				total -= len(window[0])
				if len(window) > 1 {
					total -= sepLen
				}
				window = window[1:]
				joinLen = 0
				if len(window) > 0 {
					joinLen = sepLen
				}
			}
		}

		window = append(window, part)
		total += partLen
		if len(window) > 1 {
			total += sepLen
		}
	}

	if chunk := strings.Join(window, sep); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// hardSplit cuts fixed windows when no separator exists at all (one giant
// unbroken token). Windows advance by size-overlap so neighbours still share
// context. Every cut backs up to the nearest rune start, so multibyte text
// never yields an invalid UTF-8 chunk.
func (c Chunker) hardSplit(text string) []string {
	step := c.size - c.overlap
	if step <= 0 {
		step = c.size
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + c.size
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		for end > start && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == start {
			// a single rune wider than the whole budget; emit it anyway
			_, width := utf8.DecodeRuneInString(text[start:])
			end = start + width
		}
		chunks = append(chunks, text[start:end])

		next := start + step
		for next > start && !utf8.RuneStart(text[next]) {
			next--
		}
		if next == start {
			next = end
		}
		start = next
	}
	return chunks
}
