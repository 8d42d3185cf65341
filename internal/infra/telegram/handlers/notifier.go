package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Messenger is the part of *tgbotapi.BotAPI the handlers use.
type Messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// AdminNotifier sends operational messages to the admin chat. Failures
// are logged and swallowed.
type AdminNotifier struct {
	bot     Messenger
	adminID int64
	logger  *zap.Logger
}

func NewAdminNotifier(bot Messenger, adminID int64, logger *zap.Logger) *AdminNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminNotifier{bot: bot, adminID: adminID, logger: logger}
}

func (n *AdminNotifier) Notify(text string) error {
	return n.send(tgbotapi.NewMessage(n.adminID, text))
}

func (n *AdminNotifier) NotifyMarkdown(text string) error {
	msg := tgbotapi.NewMessage(n.adminID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return n.send(msg)
}

func (n *AdminNotifier) send(msg tgbotapi.MessageConfig) error {
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Warn("admin notification failed", zap.Int64("admin_id", n.adminID), zap.Error(err))
		return err
	}
	return nil
}

func escapeMarkdown(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}
