package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	pkgResponse "meeting-task-automation/pkg/response"
)

const scanTimeout = 10 * time.Minute

// HandleDriveNotification processes Google Drive push notifications. Drive
// does not say which file changed, only that the watched resource did, so a
// valid notification triggers a rescan of the watched folders. The scan runs
// in the background; Drive retries with backoff when the endpoint is slow.
func (h *Handler) HandleDriveNotification(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateIPAddress(c.Request); err != nil {
		h.l.Warnf(ctx, "drive webhook IP rejected: %v", err)
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.security.CheckRateLimit(extractIP(c.Request)); err != nil {
		h.l.Warnf(ctx, "drive webhook rate limited: %v", err)
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	token := c.GetHeader("X-Goog-Channel-Token")
	if err := h.security.ValidateChannelToken(token); err != nil {
		h.l.Errorf(ctx, "drive webhook token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	// Drive sends a "sync" message when the channel is registered.
	state := c.GetHeader("X-Goog-Resource-State")
	if state == "sync" {
		pkgResponse.OK(c, gin.H{"status": "sync acknowledged"})
		return
	}

	channelID := c.GetHeader("X-Goog-Channel-ID")
	h.l.Infof(ctx, "drive notification received: channel=%s state=%s", channelID, state)

	go h.scanWatchedFolders()

	// Acknowledge immediately
	pkgResponse.OK(c, gin.H{"status": "accepted"})
}

func (h *Handler) scanWatchedFolders() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	for _, folderID := range h.watchedFolders {
		if _, err := h.ingestUC.ScanFolder(ctx, folderID); err != nil {
			h.l.Errorf(ctx, "folder scan failed: folder=%s err=%v", folderID, err)
		}
	}
}
