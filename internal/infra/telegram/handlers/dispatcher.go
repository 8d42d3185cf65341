package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/alboomx-bot/internal/infra/telegram/conversation"
	"github.com/xavierca1/alboomx-bot/internal/menu"
)

// Dispatcher routes every update: commands first, then a pending
// continuation, then the menu labels.
type Dispatcher struct {
	bot     Messenger
	catalog *menu.Catalog
	convo   *conversation.Store
	intake  *IntakeHandler
	admin   *LeadAdminHandler
	logger  *zap.Logger
}

func NewDispatcher(
	bot Messenger,
	catalog *menu.Catalog,
	convo *conversation.Store,
	intake *IntakeHandler,
	admin *LeadAdminHandler,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		bot:     bot,
		catalog: catalog,
		convo:   convo,
		intake:  intake,
		admin:   admin,
		logger:  logger,
	}
}

func (d *Dispatcher) Handle(ctx context.Context, update tgbotapi.Update) {
	if cq := update.CallbackQuery; cq != nil {
		d.admin.HandleCallback(ctx, cq)
		return
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			d.convo.Cancel(ctx, chatID)
			d.greet(msg)
			return
		case "cancel":
			d.cancel(ctx, chatID)
			return
		case "lead":
			d.admin.HandleLookup(ctx, msg)
			return
		}
	}

	if d.convo.AwaitingContact(chatID) {
		if item, ok := d.catalog.Lookup(msg.Text); ok && item.Action == menu.ActionCancel {
			d.cancel(ctx, chatID)
			return
		}
		if msg.Text == "" {
			d.send(tgbotapi.NewMessage(chatID, textContactReprompt))
			return
		}
		d.intake.HandleContact(ctx, msg)
		return
	}

	item, ok := d.catalog.Lookup(msg.Text)
	if !ok {
		d.showMenu(chatID, d.catalog.Fallback())
		return
	}

	switch item.Action {
	case menu.ActionContact:
		if err := d.convo.RequestContact(ctx, chatID); err != nil {
			d.logger.Error("cannot arm contact request", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
		d.send(tgbotapi.NewMessage(chatID, textContactPrompt))
	case menu.ActionCancel:
		d.cancel(ctx, chatID)
	default:
		d.send(tgbotapi.NewMessage(chatID, item.Reply))
	}
}

func (d *Dispatcher) greet(msg *tgbotapi.Message) {
	firstName := defaultFirstName
	if msg.From != nil && msg.From.FirstName != "" {
		firstName = msg.From.FirstName
	}

	text, err := d.catalog.Greeting(escapeMarkdown(firstName))
	if err != nil {
		d.logger.Error("greeting render failed", zap.Error(err))
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeMarkdown
	reply.ReplyMarkup = mainMenuKeyboard(d.catalog)
	d.send(reply)
}

func (d *Dispatcher) cancel(ctx context.Context, chatID int64) {
	if d.convo.Cancel(ctx, chatID) {
		d.showMenu(chatID, textCancelled)
		return
	}
	d.showMenu(chatID, d.catalog.Fallback())
}

func (d *Dispatcher) showMenu(chatID int64, text string) {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyMarkup = mainMenuKeyboard(d.catalog)
	d.send(reply)
}

func (d *Dispatcher) send(msg tgbotapi.MessageConfig) {
	if _, err := d.bot.Send(msg); err != nil {
		d.logger.Warn("reply failed", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}
