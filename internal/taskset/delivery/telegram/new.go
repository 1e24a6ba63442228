package telegram

import (
	"github.com/gin-gonic/gin"

	"meeting-task-automation/internal/taskset"
	pkgLog "meeting-task-automation/pkg/log"
	pkgTelegram "meeting-task-automation/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new Telegram delivery handler. approvedChatID restricts the
// bot to one chat; updates from anywhere else are ignored.
func New(
	l pkgLog.Logger,
	uc taskset.UseCase,
	bot *pkgTelegram.Bot,
	approvedChatID int64,
) Handler {
	return &handler{
		l:              l,
		uc:             uc,
		bot:            bot,
		approvedChatID: approvedChatID,
	}
}
