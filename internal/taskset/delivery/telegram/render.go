package telegram

import (
	"context"
	"fmt"
	"strings"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset"
	pkgTelegram "meeting-task-automation/pkg/telegram"
)

const helpText = `*Meeting Task Review*

New meeting transcripts are analyzed automatically; extracted tasks wait here for your approval.

*Commands:*
` + "`/pending`" + ` — list sets awaiting review
` + "`/review <set-id>`" + ` — show a set's tasks
` + "`/approve <set-id> <n>`" + ` — create task n in the tracker
` + "`/dismiss <set-id> <n>`" + ` — reject task n
` + "`/approveall <set-id>`" + ` — create every remaining task
` + "`/edit <set-id> <n> <field> <value>`" + ` — change title, due, priority, or assignee`

// Notifier pushes newly created sets into the approval chat. It satisfies
// the ingest Notifier interface.
type Notifier struct {
	bot    *pkgTelegram.Bot
	chatID int64
}

func NewNotifier(bot *pkgTelegram.Bot, chatID int64) *Notifier {
	return &Notifier{bot: bot, chatID: chatID}
}

func (n *Notifier) NotifyNewSet(ctx context.Context, set model.PendingTaskSet) error {
	return n.bot.SendMessageWithMode(n.chatID, renderSet(set), "Markdown")
}

func renderSet(set model.PendingTaskSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s*\n", escapeMarkdown(set.MeetingTitle))
	fmt.Fprintf(&b, "Set `%s` — %s\n", set.ID, set.Status)
	if set.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", escapeMarkdown(set.Summary))
	}
	if len(set.Decisions) > 0 {
		b.WriteString("\n*Decisions:*\n")
		for _, d := range set.Decisions {
			fmt.Fprintf(&b, "• %s\n", escapeMarkdown(d))
		}
	}

	if len(set.Candidates) == 0 {
		b.WriteString("\nNo actionable tasks were found in this meeting.\n")
		return b.String()
	}

	b.WriteString("\n*Tasks:*\n")
	for i, c := range set.Candidates {
		fmt.Fprintf(&b, "\n%d. %s %s\n", i+1, resolutionBadge(c.Resolution), escapeMarkdown(c.Title))
		if c.SuggestedAssignee != "" {
			fmt.Fprintf(&b, "   Assignee: %s\n", escapeMarkdown(c.SuggestedAssignee))
		}
		if c.SuggestedDue != "" {
			fmt.Fprintf(&b, "   Due: %s\n", c.SuggestedDue)
		}
		fmt.Fprintf(&b, "   Priority: %s, confidence %.0f%%\n", c.Priority, c.Confidence*100)
		if c.SourceQuote != "" {
			fmt.Fprintf(&b, "   _\"%s\"_\n", escapeMarkdown(c.SourceQuote))
		}
	}
	return b.String()
}

func renderSetList(sets []model.PendingTaskSet) string {
	if len(sets) == 0 {
		return "Nothing waiting for review."
	}

	var b strings.Builder
	b.WriteString("*Sets awaiting review:*\n")
	for _, set := range sets {
		open := 0
		for _, c := range set.Candidates {
			if !c.Resolution.Terminal() {
				open++
			}
		}
		fmt.Fprintf(&b, "\n• *%s* — %d open task(s)\n  `%s`\n", escapeMarkdown(set.MeetingTitle), open, set.ID)
	}
	return b.String()
}

func renderResolution(out taskset.ResolveOutput, approved bool) string {
	c := out.Candidate
	if !approved {
		return fmt.Sprintf("Dismissed *%s*.\n%s", escapeMarkdown(c.Title), setProgress(out.Set))
	}

	msg := fmt.Sprintf("Created *%s* in the tracker.", escapeMarkdown(c.Title))
	if c.ExternalTaskURL != "" {
		msg += fmt.Sprintf("\n[Open task](%s)", c.ExternalTaskURL)
	}
	return msg + "\n" + setProgress(out.Set)
}

func renderBulkResult(out taskset.ResolveAllOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bulk approve: *%d created*, %d failed.\n", len(out.Created), len(out.Failed))
	for _, f := range out.Failed {
		fmt.Fprintf(&b, "• task %d: %s\n", f.Index+1, escapeMarkdown(f.Reason))
	}
	b.WriteString(setProgress(out.Set))
	return b.String()
}

func renderCandidate(set model.PendingTaskSet, index int) string {
	c := set.Candidates[index]
	msg := fmt.Sprintf("Updated task %d: *%s*\nPriority: %s", index+1, escapeMarkdown(c.Title), c.Priority)
	if c.SuggestedDue != "" {
		msg += "\nDue: " + c.SuggestedDue
	}
	if c.SuggestedAssignee != "" {
		msg += "\nAssignee: " + escapeMarkdown(c.SuggestedAssignee)
	}
	return msg
}

func setProgress(set model.PendingTaskSet) string {
	if set.Status == model.SetStatusCompleted {
		return "All tasks in this set are resolved. ✅"
	}
	open := 0
	for _, c := range set.Candidates {
		if !c.Resolution.Terminal() {
			open++
		}
	}
	return fmt.Sprintf("%d task(s) still open in `%s`.", open, set.ID)
}

func resolutionBadge(r model.Resolution) string {
	switch r {
	case model.ResolutionCreated:
		return "✅"
	case model.ResolutionDismissed:
		return "🚫"
	default:
		return "▫️"
	}
}

var markdownEscaper = strings.NewReplacer("*", "\\*", "_", "\\_", "`", "\\`", "[", "\\[")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
