package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const pollTimeoutSeconds = 60

// NewBot authenticates the token against the Bot API.
func NewBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	return bot, nil
}

// UpdateSource is satisfied by *tgbotapi.BotAPI.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UpdateHandler interface {
	Handle(ctx context.Context, update tgbotapi.Update)
}

// Poller feeds long-polled updates to the handler one at a time.
type Poller struct {
	source  UpdateSource
	handler UpdateHandler
	logger  *zap.Logger
}

func NewPoller(source UpdateSource, handler UpdateHandler, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{source: source, handler: handler, logger: logger}
}

// Run blocks until ctx is cancelled or the update channel closes.
func (p *Poller) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds

	updates := p.source.GetUpdatesChan(cfg)
	p.logger.Info("✅ bot is polling for updates")

	for {
		select {
		case <-ctx.Done():
			p.source.StopReceivingUpdates()
			p.logger.Info("polling stopped")
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			p.dispatch(ctx, u)
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, u tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic while handling update",
				zap.Int("update_id", u.UpdateID), zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	p.handler.Handle(ctx, u)
}
