package utils

// SplitText splits a long string into chunks of at most chunkSize runes,
// carrying an overlap of `overlap` runes between consecutive chunks to
// preserve context at boundaries. Splitting prefers natural boundaries
// (paragraph break, newline, sentence end, word gap) near the end of each
// window before falling back to a hard cut.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	if overlap < 0 || overlap >= chunkSize {
		overlap = 0 // fallback if overlap >= chunkSize
	}

	var chunks []string
	start := 0
	for {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := breakPoint(runes, start, end, overlap)
		chunks = append(chunks, string(runes[start:cut]))
		start = cut - overlap
	}

	return chunks
}

var separators = []string{"\n\n", "\n", ". ", " "}

// breakPoint picks the cut position for the window [start, end). Only the
// final quarter of the window is searched so chunks stay near chunkSize, and
// the cut always leaves more than `overlap` runes behind it so the next
// window advances.
func breakPoint(runes []rune, start, end, overlap int) int {
	min := start + overlap + 1
	if min >= end {
		return end
	}

	floor := end - (end-start)/4
	if floor < min {
		floor = min
	}

	for _, sep := range separators {
		sepRunes := []rune(sep)
		if i := lastIndexRunes(runes, floor, end, sepRunes); i >= 0 {
			return i + len(sepRunes)
		}
	}
	return end
}

// lastIndexRunes returns the largest p in [lo, hi-len(sep)] where sep occurs
// at runes[p], or -1.
func lastIndexRunes(runes []rune, lo, hi int, sep []rune) int {
	for p := hi - len(sep); p >= lo; p-- {
		match := true
		for j, r := range sep {
			if runes[p+j] != r {
				match = false
				break
			}
		}
		if match {
			return p
		}
	}
	return -1
}
