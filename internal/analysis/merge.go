package analysis

import (
	"strings"

	"meeting-task-automation/internal/model"
)

// Merge combines per-chunk analyses into one, deduplicating candidates that
// describe the same task. Two candidates are duplicates when their normalized
// titles are equal, one contains the other, or their title token overlap
// exceeds 0.7. The survivor keeps the slot of the earlier candidate; between
// duplicates higher confidence wins, with explicit beating implicit on a
// confidence tie. A single input is the identity case and comes back
// untouched. Decisions are deduplicated by exact string, first seen wins.
func Merge(parts ...model.MeetingAnalysis) model.MeetingAnalysis {
	if len(parts) == 1 {
		return parts[0]
	}

	var out model.MeetingAnalysis

	seenDecision := make(map[string]bool)
	var summaries []string

	for _, part := range parts {
		if s := strings.TrimSpace(part.Summary); s != "" {
			summaries = append(summaries, s)
		}
		for _, d := range part.Decisions {
			if seenDecision[d] {
				continue
			}
			seenDecision[d] = true
			out.Decisions = append(out.Decisions, d)
		}
		for _, c := range part.Candidates {
			out.Candidates = mergeCandidate(out.Candidates, c)
		}
	}

	out.Summary = strings.Join(summaries, " ")
	return out
}

// mergeCandidate appends c unless an existing candidate duplicates it, in
// which case the stronger of the two keeps the existing slot.
func mergeCandidate(existing []model.TaskCandidate, c model.TaskCandidate) []model.TaskCandidate {
	key := normalizeTitle(c.Title)
	for i, prev := range existing {
		if !sameTask(normalizeTitle(prev.Title), key) {
			continue
		}
		if stronger(c, prev) {
			existing[i] = c
		}
		return existing
	}
	return append(existing, c)
}

func stronger(a, b model.TaskCandidate) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return a.ExtractionType == model.ExtractionExplicit &&
		b.ExtractionType != model.ExtractionExplicit
}

func sameTask(a, b string) bool {
	if a == "" || b == "" {
		return a == b
	}
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return tokenOverlap(a, b) > 0.7
}

// tokenOverlap is the share of the smaller title's unique tokens that also
// appear in the larger one. Ratios are over token sets, so a repeated word
// counts once.
func tokenOverlap(a, b string) float64 {
	as := tokenSet(a)
	bs := tokenSet(b)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	if len(bs) < len(as) {
		as, bs = bs, as
	}
	matched := 0
	for t := range as {
		if bs[t] {
			matched++
		}
	}
	return float64(matched) / float64(len(as))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
}

// normalizeTitle lowercases, strips punctuation, and collapses whitespace so
// cosmetic differences don't defeat deduplication.
func normalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
