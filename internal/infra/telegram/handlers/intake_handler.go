package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/alboomx-bot/internal/infra/http/middleware"
	"github.com/xavierca1/alboomx-bot/internal/infra/telegram/conversation"
	"github.com/xavierca1/alboomx-bot/internal/menu"
	"github.com/xavierca1/alboomx-bot/internal/usecase"
)

// IntakeHandler consumes the message that answers the contact prompt.
type IntakeHandler struct {
	bot      Messenger
	capture  *usecase.CaptureLeadUseCase
	convo    *conversation.Store
	notifier *AdminNotifier
	catalog  *menu.Catalog
	logger   *zap.Logger
}

func NewIntakeHandler(
	bot Messenger,
	capture *usecase.CaptureLeadUseCase,
	convo *conversation.Store,
	notifier *AdminNotifier,
	catalog *menu.Catalog,
	logger *zap.Logger,
) *IntakeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeHandler{
		bot:      bot,
		capture:  capture,
		convo:    convo,
		notifier: notifier,
		catalog:  catalog,
		logger:   logger,
	}
}

func (h *IntakeHandler) HandleContact(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	input := usecase.CaptureLeadInput{Contact: msg.Text, UserID: chatID}
	if msg.From != nil {
		input.Username = msg.From.UserName
		input.UserID = msg.From.ID
	}

	out, err := h.capture.Execute(ctx, input)
	if usecase.HasCode(err, usecase.CodeInvalidContact) {
		middleware.RecordValidationFailure()
		h.reply(tgbotapi.NewMessage(chatID, textContactReprompt))
		return
	}
	if err != nil {
		h.logger.Error("lead capture failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.convo.Cancel(ctx, chatID)
		h.notifier.Notify(fmt.Sprintf(textGenericError, err))
		return
	}

	if err := h.convo.ContactAccepted(ctx, chatID); err != nil {
		h.logger.Warn("conversation already closed", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	if out.LocalErr != nil {
		middleware.RecordRecordStoreError("local_append")
		h.notifier.Notify(fmt.Sprintf(textLocalStoreError, out.LocalErr))
	}
	if out.RemoteErr != nil {
		middleware.RecordRecordStoreError("append")
		h.notifier.Notify(fmt.Sprintf(textRemoteStoreError, out.RemoteErr))
	}
	middleware.RecordLeadCaptured(out.RemoteErr == nil)

	thanks := tgbotapi.NewMessage(chatID, textThanks)
	thanks.ReplyMarkup = mainMenuKeyboard(h.catalog)
	h.reply(thanks)

	lead := out.Lead
	h.notifier.NotifyMarkdown(fmt.Sprintf(textNewLead,
		escapeMarkdown(lead.Contact), escapeMarkdown(lead.Username), lead.UserID))
}

func (h *IntakeHandler) reply(msg tgbotapi.MessageConfig) {
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Warn("reply failed", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}
