package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset"
	pkgLog "meeting-task-automation/pkg/log"
	pkgResponse "meeting-task-automation/pkg/response"
	pkgTelegram "meeting-task-automation/pkg/telegram"
)

type handler struct {
	l              pkgLog.Logger
	uc             taskset.UseCase
	bot            *pkgTelegram.Bot
	approvedChatID int64
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the command in a
// background goroutine so tracker round-trips never hit Telegram's webhook
// timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	if h.approvedChatID != 0 && msg.Chat.ID != h.approvedChatID {
		h.l.Warnf(ctx, "telegram handler: message from unapproved chat %d ignored", msg.Chat.ID)
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	go func() {
		// Detach from the HTTP request context, which is cancelled after
		// the response.
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, "Something went wrong handling that command. Please try again.")
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" || !strings.HasPrefix(text, "/") {
		return nil
	}

	fields := strings.Fields(text)
	command := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])
	args := fields[1:]

	switch command {
	case "/start", "/help":
		return h.bot.SendMessageWithMode(msg.Chat.ID, helpText, "Markdown")
	case "/pending":
		return h.handlePending(ctx, msg.Chat.ID)
	case "/review":
		return h.handleReview(ctx, msg.Chat.ID, args)
	case "/approve":
		return h.handleResolve(ctx, msg.Chat.ID, args, true)
	case "/dismiss":
		return h.handleResolve(ctx, msg.Chat.ID, args, false)
	case "/approveall":
		return h.handleApproveAll(ctx, msg.Chat.ID, args)
	case "/edit":
		return h.handleEdit(ctx, msg.Chat.ID, args)
	default:
		return h.bot.SendMessage(msg.Chat.ID, "Unknown command. Send /help for usage.")
	}
}

func (h *handler) handlePending(ctx context.Context, chatID int64) error {
	sets, err := h.uc.List(ctx, taskset.ListInput{Status: model.SetStatusPending, Limit: 10})
	if err != nil {
		return err
	}
	return h.bot.SendMessageWithMode(chatID, renderSetList(sets), "Markdown")
}

func (h *handler) handleReview(ctx context.Context, chatID int64, args []string) error {
	if len(args) < 1 {
		return h.bot.SendMessage(chatID, "Usage: /review <set-id>")
	}

	set, err := h.uc.Get(ctx, args[0])
	if err != nil {
		return h.sendDomainError(chatID, err)
	}
	return h.bot.SendMessageWithMode(chatID, renderSet(set), "Markdown")
}

func (h *handler) handleResolve(ctx context.Context, chatID int64, args []string, approve bool) error {
	setID, index, err := parseTarget(args)
	if err != nil {
		verb := "/dismiss"
		if approve {
			verb = "/approve"
		}
		return h.bot.SendMessage(chatID, fmt.Sprintf("Usage: %s <set-id> <task-number>", verb))
	}

	var out taskset.ResolveOutput
	if approve {
		out, err = h.uc.ResolveCreated(ctx, setID, index)
	} else {
		out, err = h.uc.ResolveDismissed(ctx, setID, index)
	}
	if err != nil {
		return h.sendDomainError(chatID, err)
	}
	return h.bot.SendMessageWithMode(chatID, renderResolution(out, approve), "Markdown")
}

func (h *handler) handleApproveAll(ctx context.Context, chatID int64, args []string) error {
	if len(args) < 1 {
		return h.bot.SendMessage(chatID, "Usage: /approveall <set-id>")
	}

	out, err := h.uc.ResolveAll(ctx, args[0])
	if err != nil {
		return h.sendDomainError(chatID, err)
	}
	return h.bot.SendMessageWithMode(chatID, renderBulkResult(out), "Markdown")
}

// handleEdit updates one field of a pending candidate:
// /edit <set-id> <task-number> <title|due|priority|assignee> <value...>
func (h *handler) handleEdit(ctx context.Context, chatID int64, args []string) error {
	if len(args) < 4 {
		return h.bot.SendMessage(chatID, "Usage: /edit <set-id> <task-number> <title|due|priority|assignee> <value>")
	}

	setID, index, err := parseTarget(args[:2])
	if err != nil {
		return h.bot.SendMessage(chatID, "Usage: /edit <set-id> <task-number> <title|due|priority|assignee> <value>")
	}

	value := strings.Join(args[3:], " ")
	var edit taskset.CandidateEdit
	switch strings.ToLower(args[2]) {
	case "title":
		edit.Title = &value
	case "due":
		edit.SuggestedDue = &value
	case "assignee":
		edit.SuggestedAssignee = &value
	case "priority":
		p := model.Priority(strings.ToLower(value))
		edit.Priority = &p
	default:
		return h.bot.SendMessage(chatID, fmt.Sprintf("Unknown field %q. Editable: title, due, priority, assignee.", args[2]))
	}

	set, err := h.uc.EditCandidate(ctx, setID, index, edit)
	if err != nil {
		return h.sendDomainError(chatID, err)
	}
	return h.bot.SendMessageWithMode(chatID, renderCandidate(set, index), "Markdown")
}

// parseTarget reads a set ID and a 1-based task number from command args.
func parseTarget(args []string) (string, int, error) {
	if len(args) < 2 {
		return "", 0, fmt.Errorf("missing arguments")
	}
	number, err := strconv.Atoi(args[1])
	if err != nil || number < 1 {
		return "", 0, fmt.Errorf("invalid task number %q", args[1])
	}
	return args[0], number - 1, nil
}

func (h *handler) sendDomainError(chatID int64, err error) error {
	switch {
	case errors.Is(err, taskset.ErrNotFound):
		return h.bot.SendMessage(chatID, "No task set with that ID.")
	case errors.Is(err, taskset.ErrIndexOutOfRange):
		return h.bot.SendMessage(chatID, "No task with that number in the set.")
	case errors.Is(err, taskset.ErrCandidateResolved):
		return h.bot.SendMessage(chatID, "That task was already resolved.")
	case errors.Is(err, taskset.ErrInvalidEdit):
		return h.bot.SendMessage(chatID, fmt.Sprintf("Edit rejected: %v", err))
	case errors.Is(err, taskset.ErrTrackerCreate):
		return h.bot.SendMessage(chatID, "Could not create the task in the tracker. Try again later.")
	default:
		return err
	}
}
