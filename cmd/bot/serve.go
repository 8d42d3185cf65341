package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/alboomx-bot/internal/config"
	"github.com/xavierca1/alboomx-bot/internal/infra/database"
	"github.com/xavierca1/alboomx-bot/internal/infra/fallback"
	httpserver "github.com/xavierca1/alboomx-bot/internal/infra/http"
	"github.com/xavierca1/alboomx-bot/internal/infra/http/handlers"
	"github.com/xavierca1/alboomx-bot/internal/infra/mail"
	"github.com/xavierca1/alboomx-bot/internal/infra/queue"
	"github.com/xavierca1/alboomx-bot/internal/infra/sheets"
	"github.com/xavierca1/alboomx-bot/internal/infra/telegram"
	"github.com/xavierca1/alboomx-bot/internal/infra/telegram/conversation"
	tghandlers "github.com/xavierca1/alboomx-bot/internal/infra/telegram/handlers"
	"github.com/xavierca1/alboomx-bot/internal/infra/worker"
	"github.com/xavierca1/alboomx-bot/internal/logger"
	"github.com/xavierca1/alboomx-bot/internal/menu"
	"github.com/xavierca1/alboomx-bot/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot, the keep-alive server and background workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	// 1. Stores
	sheet, err := sheets.NewFromServiceAccount(ctx, cfg.SpreadsheetID, cfg.ServiceAccountJSON)
	if err != nil {
		return err
	}

	local := fallback.NewCSVStore(cfg.LocalStorePath)
	if err := local.EnsureHeader(); err != nil {
		return fmt.Errorf("prepare %s: %w", cfg.LocalStorePath, err)
	}

	// Optional: interfaces stay nil when a dependency is not configured.
	var (
		journal usecase.SyncFailureJournal
		pinger  handlers.Pinger
	)
	if cfg.DatabaseURL != "" {
		db, repo, err := openJournal(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		journal, pinger = repo, db
		log.Info("sync failure journal enabled")
	}

	// 2. Lead events
	var (
		events  usecase.EventPublisher
		mq      *queue.RabbitMQ
		checker handlers.ConnChecker
		mailer  *mail.EmailSender
	)
	if cfg.Mail.Enabled() {
		m := cfg.Mail
		mailer = mail.NewEmailSender(m.Host, m.Port, m.User, m.Pass, m.From, m.To)
	}

	if cfg.AMQPURL != "" {
		mq, err = queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			return err
		}
		defer mq.Close()
		events, checker = queue.NewProducer(mq.Ch), mq.Conn
		log.Info("lead events go through rabbitmq", zap.String("queue", queue.QueueName))
	} else if mailer != nil {
		events = mailer
		log.Info("lead events are mailed directly", zap.String("to", cfg.Mail.To))
	}

	// 3. UseCases
	capture := usecase.NewCaptureLeadUseCase(local, sheet, journal, events, cfg.Now, log)
	lookup := usecase.NewLookupLeadUseCase(sheet, cfg.AdminID)
	update := usecase.NewUpdateLeadStatusUseCase(sheet, events, cfg.AdminID, cfg.AdminMarker, cfg.Now, log)

	// 4. Telegram
	bot, err := telegram.NewBot(cfg.Token)
	if err != nil {
		return err
	}
	log.Info("authorized on telegram", zap.String("bot", bot.Self.UserName))

	catalog, err := menu.Default(menu.URLs{SiteURL: cfg.SiteURL, AlbumsURL: cfg.AlbumsURL})
	if err != nil {
		return err
	}

	convo := conversation.NewStore()
	notifier := tghandlers.NewAdminNotifier(bot, cfg.AdminID, log)
	intake := tghandlers.NewIntakeHandler(bot, capture, convo, notifier, catalog, log)
	admin := tghandlers.NewLeadAdminHandler(bot, lookup, update, log)
	dispatcher := tghandlers.NewDispatcher(bot, catalog, convo, intake, admin, log)
	poller := telegram.NewPoller(bot, dispatcher, log)

	if _, err := bot.Send(tgbotapi.NewMessage(cfg.AdminID, tghandlers.TextStartupNotice)); err != nil {
		log.Warn("startup notice not delivered", zap.Error(err))
	}

	// 5. Keep-alive server
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpserver.NewRouter(handlers.NewHealthHandler(pinger, checker, true, cfg.Version)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return poller.Run(gctx)
	})

	g.Go(func() error {
		log.Info("🔥 keep-alive server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("keep-alive server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.KeepAlivePingURL != "" {
		keepAlive := worker.NewKeepAliveWorker(cfg.KeepAlivePingURL, cfg.KeepAlivePingInterval, log)
		g.Go(func() error {
			keepAlive.Start(gctx)
			return nil
		})
	}

	if mq != nil && mailer != nil {
		consumer := queue.NewWorker(mq.Ch, mailer, log)
		g.Go(func() error {
			return consumer.Start(gctx, queue.QueueName)
		})
	}

	err = g.Wait()
	log.Info("bot stopped", zap.Error(err))
	return err
}

// openJournal connects the sync-failure journal for commands that need it.
func openJournal(ctx context.Context, url string) (*sql.DB, *database.SyncFailureRepository, error) {
	if url == "" {
		return nil, nil, errors.New("DATABASE_URL is required")
	}
	db, err := database.NewDBConnection(url)
	if err != nil {
		return nil, nil, err
	}
	repo := database.NewSyncFailureRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, repo, nil
}
