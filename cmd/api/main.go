package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	cloudFirestore "cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"meeting-task-automation/config"
	_ "meeting-task-automation/docs" // Swagger docs
	"meeting-task-automation/internal/analysis"
	"meeting-task-automation/internal/httpserver"
	"meeting-task-automation/internal/ingest"
	gdriveSource "meeting-task-automation/internal/ingest/repository/gdrive"
	ingestUsecase "meeting-task-automation/internal/ingest/usecase"
	tgDelivery "meeting-task-automation/internal/taskset/delivery/telegram"
	"meeting-task-automation/internal/taskset/repository"
	firestoreRepo "meeting-task-automation/internal/taskset/repository/firestore"
	memoryRepo "meeting-task-automation/internal/taskset/repository/memory"
	gtasksTracker "meeting-task-automation/internal/taskset/tracker/gtasks"
	tasksetUsecase "meeting-task-automation/internal/taskset/usecase"
	"meeting-task-automation/internal/webhook"
	"meeting-task-automation/pkg/gdrive"
	"meeting-task-automation/pkg/gtasks"
	"meeting-task-automation/pkg/llmprovider"
	"meeting-task-automation/pkg/log"
	"meeting-task-automation/pkg/telegram"
)

// driveChannelTTL bounds watch channel lifetime; Drive caps file watches at
// about a week, so channels have to be re-registered on restart anyway.
const driveChannelTTL = 24 * time.Hour

// @title       Meeting Task Automation API
// @description Turns Google Drive meeting transcripts into reviewable task candidates and tracked Google Tasks.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Meeting Task Automation...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Task set persistence: Firestore when a project is configured,
	// otherwise an in-memory store for local runs.
	var repo repository.Repository
	if cfg.Firestore.ProjectID != "" {
		var opts []option.ClientOption
		if cfg.Firestore.CredentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firestore.CredentialsPath))
		}
		fsClient, fsErr := cloudFirestore.NewClient(ctx, cfg.Firestore.ProjectID, opts...)
		if fsErr != nil {
			logger.Error(ctx, "Failed to initialize Firestore: ", fsErr)
			return
		}
		defer fsClient.Close()
		repo = firestoreRepo.New(fsClient, cfg.Firestore.Collection)
		logger.Infof(ctx, "Firestore persistence enabled (project %s)", cfg.Firestore.ProjectID)
	} else {
		repo = memoryRepo.New()
		logger.Warn(ctx, "No Firestore project configured, using in-memory store")
	}

	// 4. Google Tasks tracker
	tasksClient, err := gtasks.NewClientFromCredentialsFile(ctx, cfg.Tasks.CredentialsPath, cfg.Tasks.TaskList)
	if err != nil {
		logger.Error(ctx, "Failed to initialize Google Tasks: ", err)
		logger.Warn(ctx, "→ Run `go run scripts/google-auth/main.go` to generate token.json")
		return
	}
	tracker := gtasksTracker.New(tasksClient)

	taskSetUC := tasksetUsecase.New(logger, repo, tracker)

	// 5. LLM extraction pipeline
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)

	orchestrator := analysis.New(logger, llmManager, analysis.Options{
		MaxChunkChars: cfg.Extraction.MaxChunkChars,
		ChunkInterval: parseDuration(cfg.Extraction.ChunkInterval, 0),
	})

	// 6. Telegram review bot (optional)
	var telegramHandler tgDelivery.Handler
	var notifier ingest.Notifier
	if cfg.Telegram.BotToken != "" {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, taskSetUC, telegramBot, cfg.Telegram.ApprovedChatID)
		if cfg.Telegram.ApprovedChatID != 0 {
			notifier = tgDelivery.NewNotifier(telegramBot, cfg.Telegram.ApprovedChatID)
		}

		// Register webhook: auto-detect ngrok or fallback to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}
		if webhookURL != "" {
			if whErr := telegramBot.SetWebhook(webhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "Telegram review bot skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 7. Drive ingestion (optional)
	var ingestUC ingest.UseCase
	var driveWebhookHandler *webhook.Handler
	if cfg.Drive.CredentialsPath != "" {
		driveClient, driveErr := gdrive.NewClientFromCredentialsFile(ctx, cfg.Drive.CredentialsPath)
		if driveErr != nil {
			logger.Error(ctx, "Failed to initialize Google Drive: ", driveErr)
			return
		}

		source := gdriveSource.New(driveClient)
		ingestUC = ingestUsecase.New(logger, source, orchestrator, taskSetUC, notifier)

		if cfg.Webhook.Enabled {
			driveWebhookHandler = webhook.NewHandler(ingestUC, webhook.SecurityConfig{
				ChannelToken:    cfg.Drive.ChannelToken,
				AllowedIPs:      cfg.Webhook.AllowedIPs,
				RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
			}, cfg.Drive.WatchedFolderIDs, logger)

			registerDriveWatches(ctx, logger, driveClient, cfg)
		}
	} else {
		logger.Warn(ctx, "Drive ingestion skipped: drive.credentials_path is missing")
	}

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:                cfg.HTTPServer.Port,
		Mode:                cfg.HTTPServer.Mode,
		Environment:         cfg.Environment.Name,
		TaskSetUC:           taskSetUC,
		IngestUC:            ingestUC,
		TelegramHandler:     telegramHandler,
		DriveWebhookHandler: driveWebhookHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// registerDriveWatches opens a push channel on every watched folder so Drive
// notifies us about new transcripts. Failures are non-fatal: the /webhook/drive
// endpoint still works for channels registered out of band, and manual scans
// remain possible.
func registerDriveWatches(ctx context.Context, logger log.Logger, client *gdrive.Client, cfg *config.Config) {
	address := cfg.Drive.WebhookAddress
	if address == "" {
		ngrokURL, err := detectNgrokURL(ctx, "http://ngrok:4040")
		if err != nil {
			logger.Warnf(ctx, "Drive watch skipped, no webhook address: %v", err)
			return
		}
		address = ngrokURL + "/webhook/drive"
	}

	for _, folderID := range cfg.Drive.WatchedFolderIDs {
		channelID := uuid.NewString()
		ch, err := client.WatchFolder(ctx, folderID, channelID, cfg.Drive.ChannelToken, address, driveChannelTTL)
		if err != nil {
			logger.Warnf(ctx, "Failed to watch folder %s: %v", folderID, err)
			continue
		}
		logger.Infof(ctx, "✅ Watching folder %s (channel %s, expires %s)", folderID, ch.ID, ch.Expiration)
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
