package handlers

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/alboomx-bot/internal/entity"
	"github.com/xavierca1/alboomx-bot/internal/infra/telegram/conversation"
	"github.com/xavierca1/alboomx-bot/internal/menu"
	"github.com/xavierca1/alboomx-bot/internal/usecase"
)

const (
	adminID int64 = 42
	userID  int64 = 555
)

// fakeBot records everything the handlers push to Telegram.
type fakeBot struct {
	mu     sync.Mutex
	sent   []tgbotapi.Chattable
	nextID int
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) messagesTo(chatID int64) []tgbotapi.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok && m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

func (b *fakeBot) textsTo(chatID int64) []string {
	var out []string
	for _, m := range b.messagesTo(chatID) {
		out = append(out, m.Text)
	}
	return out
}

func (b *fakeBot) lastTo(t *testing.T, chatID int64) tgbotapi.MessageConfig {
	t.Helper()
	msgs := b.messagesTo(chatID)
	require.NotEmpty(t, msgs, "no messages to %d", chatID)
	return msgs[len(msgs)-1]
}

func (b *fakeBot) callbacks() []tgbotapi.CallbackConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.CallbackConfig
	for _, c := range b.sent {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			out = append(out, cb)
		}
	}
	return out
}

func (b *fakeBot) edits() []tgbotapi.EditMessageReplyMarkupConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.EditMessageReplyMarkupConfig
	for _, c := range b.sent {
		if e, ok := c.(tgbotapi.EditMessageReplyMarkupConfig); ok {
			out = append(out, e)
		}
	}
	return out
}

type cellUpdate struct {
	row, column int
	value       string
}

// memSheet is an in-memory record store with a header row.
type memSheet struct {
	mu        sync.Mutex
	rows      [][]string
	updates   []cellUpdate
	reads     int
	appendErr error
	readErr   error
}

func newMemSheet(leads ...[]string) *memSheet {
	return &memSheet{rows: append([][]string{entity.Header}, leads...)}
}

func (s *memSheet) Append(_ context.Context, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.rows = append(s.rows, append([]string(nil), row...))
	return nil
}

func (s *memSheet) ReadAll(_ context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.readErr != nil {
		return nil, s.readErr
	}
	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (s *memSheet) UpdateCell(_ context.Context, row, column int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, cellUpdate{row, column, value})
	for len(s.rows[row-1]) < column {
		s.rows[row-1] = append(s.rows[row-1], "")
	}
	s.rows[row-1][column-1] = value
	return nil
}

func (s *memSheet) leads() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[1:]
}

type memLocal struct {
	mu   sync.Mutex
	rows [][]string
}

func (l *memLocal) Append(_ context.Context, row []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append(l.rows, row)
	return nil
}

func leadRow(id, name string) []string {
	return []string{name, name + ", +77000000000", strings.ToLower(name), id, "01.03.2026 10:00", "Новая", "", "—"}
}

type fixture struct {
	bot        *fakeBot
	sheet      *memSheet
	local      *memLocal
	convo      *conversation.Store
	admin      *LeadAdminHandler
	dispatcher *Dispatcher
}

func newFixture(t *testing.T, sheet *memSheet) *fixture {
	t.Helper()

	catalog, err := menu.Default(menu.URLs{SiteURL: "https://alboomx.kz", AlbumsURL: "https://albums.alboomx.kz"})
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC) }
	bot := &fakeBot{}
	local := &memLocal{}
	convo := conversation.NewStore()

	capture := usecase.NewCaptureLeadUseCase(local, sheet, nil, nil, now, nil)
	lookup := usecase.NewLookupLeadUseCase(sheet, adminID)
	update := usecase.NewUpdateLeadStatusUseCase(sheet, nil, adminID, "Админ", now, nil)

	notifier := NewAdminNotifier(bot, adminID, nil)
	intake := NewIntakeHandler(bot, capture, convo, notifier, catalog, nil)
	admin := NewLeadAdminHandler(bot, lookup, update, nil)

	return &fixture{
		bot:        bot,
		sheet:      sheet,
		local:      local,
		convo:      convo,
		admin:      admin,
		dispatcher: NewDispatcher(bot, catalog, convo, intake, admin, nil),
	}
}

func (f *fixture) handle(u tgbotapi.Update) {
	f.dispatcher.Handle(context.Background(), u)
}

func textUpdate(chatID int64, username, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: chatID, UserName: username, FirstName: "Анна"},
		Text: text,
	}}
}

func commandUpdate(chatID int64, text string) tgbotapi.Update {
	u := textUpdate(chatID, "", text)
	cmd := strings.SplitN(text, " ", 2)[0]
	u.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	return u
}

func callbackUpdate(fromID, chatID int64, messageID int, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		From:    &tgbotapi.User{ID: fromID},
		Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}}
}
