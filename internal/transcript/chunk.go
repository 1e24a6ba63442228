package transcript

import "strings"

// PlanChunks splits normalized content into pieces of at most maxChars,
// cutting between lines. When the limit lands mid-turn the planner backtracks
// to the last speaker-change boundary in the open chunk so cuts fall between
// speakers where possible; a line that cannot fit anywhere still forces a
// hard cut. A single line longer than maxChars is emitted whole as its own
// oversized chunk. Joining the chunks with a newline reproduces the original
// line sequence exactly.
func PlanChunks(content string, maxChars int) []string {
	if maxChars <= 0 || len(content) <= maxChars {
		return []string{content}
	}

	lines := strings.Split(content, "\n")

	var chunks []string
	var buf []string
	bufLen := 0

	flush := func() {
		if len(buf) > 0 {
			chunks = append(chunks, strings.Join(buf, "\n"))
			buf = nil
			bufLen = 0
		}
	}

	for _, line := range lines {
		addition := len(line)
		if len(buf) > 0 {
			addition++ // joining newline
		}

		if len(buf) > 0 && bufLen+addition > maxChars {
			if cut, tail, tailLen := boundaryCut(buf, line, maxChars); cut != nil {
				chunks = append(chunks, strings.Join(cut, "\n"))
				buf = tail
				bufLen = tailLen
			} else {
				flush()
			}
		}

		if len(buf) == 0 && len(line) > maxChars {
			chunks = append(chunks, line)
			continue
		}

		if len(buf) > 0 {
			bufLen++
		}
		buf = append(buf, line)
		bufLen += len(line)
	}

	flush()
	return chunks
}

// boundaryCut tries to split buf at its last speaker-change boundary so that
// the carried-over tail plus next still fits in one chunk. It returns nil
// when no usable boundary exists and the caller must hard-cut instead.
func boundaryCut(buf []string, next string, maxChars int) (cut, tail []string, tailLen int) {
	if isSpeakerBoundary(next) {
		return nil, nil, 0
	}

	idx := -1
	for i := len(buf) - 1; i > 0; i-- {
		if isSpeakerBoundary(buf[i]) {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return nil, nil, 0
	}

	tailLen = joinedLen(buf[idx:])
	if tailLen+1+len(next) > maxChars {
		return nil, nil, 0
	}

	tail = append([]string(nil), buf[idx:]...)
	return buf[:idx], tail, tailLen
}

func joinedLen(lines []string) int {
	n := 0
	for i, line := range lines {
		if i > 0 {
			n++
		}
		n += len(line)
	}
	return n
}
