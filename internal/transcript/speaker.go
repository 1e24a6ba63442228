package transcript

import "regexp"

// nameSeq matches a short run of capitalized words, the shape speaker labels
// take in every supported transcript format.
const nameSeq = `[A-Z][A-Za-z.'-]*(?:\s+[A-Z][A-Za-z.'-]*){0,3}`

var (
	speakerColonRe   = regexp.MustCompile(`^(` + nameSeq + `):(?:\s|$)`)
	speakerBracketRe = regexp.MustCompile(`^\[(` + nameSeq + `)\]`)
	speakerSaidRe    = regexp.MustCompile(`^(` + nameSeq + `) said:`)

	bareNameRe = regexp.MustCompile(`^` + nameSeq + `$`)

	clockShapeRe = regexp.MustCompile(`^\d{1,2}:\d{2}`)
)

var speakerLabelRes = []*regexp.Regexp{speakerColonRe, speakerBracketRe, speakerSaidRe}

// isSpeakerBoundary reports whether a normalized content line starts a new
// speaker turn.
func isSpeakerBoundary(line string) bool {
	for _, re := range speakerLabelRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// extractAttendees collects the unique speaker names appearing in normalized
// content. Anything shaped like a clock time is discarded.
func extractAttendees(lines []string) []string {
	seen := make(map[string]struct{})
	var attendees []string

	for _, line := range lines {
		for _, re := range speakerLabelRes {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := m[1]
			if clockShapeRe.MatchString(name) {
				continue
			}
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				attendees = append(attendees, name)
			}
			break
		}
	}

	return attendees
}
