package ingest

import "strings"

// Separators ordered from "best" to "worst" for semantic meaning.
// The empty separator splits into runes and always applies.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// SplitText cuts text into chunks of at most size bytes. Neighbouring
// chunks share up to overlap bytes of trailing context, always on a
// separator boundary so no rune is ever cut.
func SplitText(text string, size int, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 4
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	for _, c := range splitRecursive(text, separators, size, overlap) {
		if c = strings.TrimSpace(c); c != "" {
			chunks = append(chunks, c)
		}
	}
	return chunks
}

func splitRecursive(text string, seps []string, size int, overlap int) []string {
	sep, rest := "", []string(nil)
	for i, s := range seps {
		if s == "" || strings.Contains(text, s) {
			sep, rest = s, seps[i+1:]
			break
		}
	}

	var chunks []string
	var fitting []string
	flush := func() {
		if len(fitting) > 0 {
			chunks = append(chunks, merge(fitting, sep, size, overlap)...)
			fitting = nil
		}
	}

	for _, part := range strings.Split(text, sep) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if len(part) <= size {
			fitting = append(fitting, part)
			continue
		}
		flush()
		if len(rest) == 0 {
			chunks = append(chunks, part)
			continue
		}
		chunks = append(chunks, splitRecursive(part, rest, size, overlap)...)
	}
	flush()
	return chunks
}

// merge packs pieces greedily into chunks, carrying whole trailing pieces
// over as overlap.
func merge(pieces []string, sep string, size int, overlap int) []string {
	var out []string
	var current []string

	for _, piece := range pieces {
		if len(current) > 0 && joinedLen(current, sep)+len(sep)+len(piece) > size {
			out = append(out, strings.Join(current, sep))
			for len(current) > 0 &&
				(joinedLen(current, sep) > overlap || joinedLen(current, sep)+len(sep)+len(piece) > size) {
				current = current[1:]
			}
		}
		current = append(current, piece)
	}
	if len(current) > 0 {
		out = append(out, strings.Join(current, sep))
	}
	return out
}

func joinedLen(parts []string, sep string) int {
	if len(parts) == 0 {
		return 0
	}
	n := len(sep) * (len(parts) - 1)
	for _, p := range parts {
		n += len(p)
	}
	return n
}
