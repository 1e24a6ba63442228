package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"meeting-task-automation/internal/ingest"
	"meeting-task-automation/internal/taskset"
	tgDelivery "meeting-task-automation/internal/taskset/delivery/telegram"
	"meeting-task-automation/internal/webhook"
	"meeting-task-automation/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Task set domain
	taskSetUC taskset.UseCase

	// Manual ingestion triggers, nil when Drive is not configured
	ingestUC ingest.UseCase

	// Telegram approval webhook
	telegramHandler tgDelivery.Handler

	// Drive push notifications
	driveWebhookHandler *webhook.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	TaskSetUC taskset.UseCase

	IngestUC ingest.UseCase

	TelegramHandler tgDelivery.Handler

	DriveWebhookHandler *webhook.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                   logger,
		gin:                 gin.Default(),
		port:                cfg.Port,
		mode:                cfg.Mode,
		environment:         cfg.Environment,
		taskSetUC:           cfg.TaskSetUC,
		ingestUC:            cfg.IngestUC,
		telegramHandler:     cfg.TelegramHandler,
		driveWebhookHandler: cfg.DriveWebhookHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskSetUC == nil {
		return errors.New("taskset usecase is required")
	}
	return nil
}
