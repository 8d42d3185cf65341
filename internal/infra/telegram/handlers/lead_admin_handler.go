package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/alboomx-bot/internal/infra/http/middleware"
	"github.com/xavierca1/alboomx-bot/internal/usecase"
)

// maxTrackedControls bounds the status controls remembered for verification.
// The oldest are forgotten first; pressing one then updates unverified.
const maxTrackedControls = 256

type controlKey struct {
	chatID    int64
	messageID int
}

// LeadAdminHandler serves /lead and the status buttons it sends.
type LeadAdminHandler struct {
	bot    Messenger
	lookup *usecase.LookupLeadUseCase
	update *usecase.UpdateLeadStatusUseCase
	logger *zap.Logger

	// UserID shown on each status control, checked again on press.
	mu       sync.Mutex
	shown    map[controlKey]string
	order    []controlKey
	maxShown int
}

func NewLeadAdminHandler(
	bot Messenger,
	lookup *usecase.LookupLeadUseCase,
	update *usecase.UpdateLeadStatusUseCase,
	logger *zap.Logger,
) *LeadAdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadAdminHandler{
		bot:    bot,
		lookup: lookup,
		update: update,
		logger: logger,
		shown:  make(map[controlKey]string),

		maxShown: maxTrackedControls,
	}
}

func (h *LeadAdminHandler) HandleLookup(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	var target string
	if args := strings.Fields(msg.CommandArguments()); len(args) > 0 {
		target = args[0]
	}

	out, err := h.lookup.Execute(ctx, usecase.LookupLeadInput{CallerID: chatID, UserID: target})
	switch {
	case usecase.HasCode(err, usecase.CodePermissionDenied):
		h.send(tgbotapi.NewMessage(chatID, textPermissionDenied))
		return
	case usecase.HasCode(err, usecase.CodeMissingArgument):
		h.send(tgbotapi.NewMessage(chatID, textLeadUsage))
		return
	case usecase.HasCode(err, usecase.CodeLeadNotFound):
		h.send(tgbotapi.NewMessage(chatID, textLeadNotFound))
		return
	case err != nil:
		middleware.RecordRecordStoreError("read")
		h.logger.Error("lead lookup failed", zap.String("user_id", target), zap.Error(err))
		h.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(textGenericError, err)))
		return
	}

	rec := out.Record
	reply := tgbotapi.NewMessage(chatID, fmt.Sprintf(textLeadFound,
		rec.Name(), rec.Phone(), rec.Username(), rec.Date(), rec.Status()))
	reply.ReplyMarkup = statusKeyboard(out.Row)

	sent, err := h.bot.Send(reply)
	if err != nil {
		h.logger.Warn("lead summary not sent", zap.Error(err))
		return
	}

	h.track(controlKey{chatID, sent.MessageID}, rec.UserID())
}

func (h *LeadAdminHandler) track(key controlKey, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.shown[key] = userID
	h.order = append(h.order, key)
	for len(h.order) > h.maxShown {
		delete(h.shown, h.order[0])
		h.order = h.order[1:]
	}
}

func (h *LeadAdminHandler) HandleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if !strings.HasPrefix(cq.Data, statusCallbackPrefix) || cq.Message == nil || cq.Message.Chat == nil {
		h.answer(cq.ID, "")
		return
	}
	chatID := cq.Message.Chat.ID
	key := controlKey{chatID, cq.Message.MessageID}

	row, status, err := DecodeStatusCallback(cq.Data)
	if err != nil {
		h.answer(cq.ID, "")
		h.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(textStatusUpdateError, err)))
		return
	}

	h.mu.Lock()
	expected, known := h.shown[key]
	h.mu.Unlock()
	if !known {
		h.logger.Warn("status control not tracked, updating row unverified", zap.Int("row", row))
	}

	var callerID int64
	if cq.From != nil {
		callerID = cq.From.ID
	}

	_, err = h.update.Execute(ctx, usecase.UpdateLeadStatusInput{
		CallerID:       callerID,
		Row:            row,
		Status:         status,
		ExpectedUserID: expected,
	})
	if usecase.HasCode(err, usecase.CodePermissionDenied) {
		h.answer(cq.ID, textPermissionDenied)
		return
	}
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordRecordStoreError("update")
		}
		h.logger.Error("status update failed", zap.Int("row", row), zap.Error(err))
		h.answer(cq.ID, "")
		h.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(textStatusUpdateError, err)))
		return
	}

	middleware.RecordStatusUpdate(string(status))

	h.answer(cq.ID, fmt.Sprintf(textStatusAnswer, status))
	h.removeControl(chatID, cq.Message.MessageID)
	h.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(textStatusUpdated, status)))

	h.mu.Lock()
	delete(h.shown, key)
	h.mu.Unlock()
}

func (h *LeadAdminHandler) answer(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Warn("callback answer failed", zap.Error(err))
	}
}

// removeControl strips the inline keyboard; a nil markup clears it.
func (h *LeadAdminHandler) removeControl(chatID int64, messageID int) {
	edit := tgbotapi.EditMessageReplyMarkupConfig{
		BaseEdit: tgbotapi.BaseEdit{ChatID: chatID, MessageID: messageID},
	}
	if _, err := h.bot.Request(edit); err != nil {
		h.logger.Warn("status control not removed", zap.Error(err))
	}
}

func (h *LeadAdminHandler) send(msg tgbotapi.MessageConfig) {
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Warn("reply failed", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}
