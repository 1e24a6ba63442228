package analysis

import (
	"fmt"
	"strings"
)

const systemInstruction = `You are a task extraction engine for meeting transcripts.

Read the transcript and extract every actionable task as a JSON object. Respond with JSON only, no prose, matching exactly this schema:

{
  "candidates": [
    {
      "title": "short imperative task title",
      "description": "one or two sentences of context",
      "suggested_assignee": "name from the transcript, or empty",
      "suggested_due": "due expression exactly as spoken, or empty",
      "priority": "urgent|high|normal|low",
      "source_quote": "the transcript line(s) the task comes from",
      "confidence": 0.0,
      "extraction_type": "explicit|implicit"
    }
  ],
  "summary": "2-4 sentence meeting summary",
  "decisions": ["decisions that were made, one string each"]
}

Extraction rules:
- "explicit" tasks are directly assigned or volunteered ("John will send the report", "I'll take care of the deploy"). They always get confidence 1.0.
- "implicit" tasks are inferred from commitments or unresolved problems ("we really should fix that flaky test"). Score confidence between 0 and 1 by how clearly the transcript supports the task.
- Do not invent tasks. Every candidate must be traceable to a source_quote.
- Copy due expressions verbatim ("next friday", "end of month", "by EOQ"). Do not convert them to dates yourself.
- priority reflects spoken urgency: "urgent" for blockers and fire drills, "high" for dated commitments, "low" for nice-to-haves, otherwise "normal".
- Prefer the assignee named in the transcript; leave suggested_assignee empty when nobody is named.`

// buildPrompt assembles the user prompt for one transcript (or one chunk).
func buildPrompt(mctx Context, content, partLabel string) string {
	var b strings.Builder

	title := mctx.MeetingTitle
	if title == "" {
		title = "Untitled meeting"
	}
	if partLabel != "" {
		title = title + " " + partLabel
	}
	fmt.Fprintf(&b, "Meeting: %s\n", title)
	fmt.Fprintf(&b, "Meeting date: %s\n", mctx.ReferenceDate.Format("Monday, 2006-01-02"))
	if mctx.FolderLabel != "" {
		fmt.Fprintf(&b, "Project: %s\n", mctx.FolderLabel)
	}
	if len(mctx.Attendees) > 0 {
		fmt.Fprintf(&b, "Attendees: %s\n", strings.Join(mctx.Attendees, ", "))
	}

	b.WriteString("\nTranscript:\n")
	b.WriteString(content)
	return b.String()
}
