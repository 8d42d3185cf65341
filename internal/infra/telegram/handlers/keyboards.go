package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/xavierca1/alboomx-bot/internal/entity"
	"github.com/xavierca1/alboomx-bot/internal/menu"
)

var statusButtonLabels = map[entity.LeadStatus]string{
	entity.StatusNew:        "🟦 Новый",
	entity.StatusInProgress: "🟨 В работе",
	entity.StatusCompleted:  "🟩 Завершён",
	entity.StatusDeclined:   "🟥 Отказ",
}

func mainMenuKeyboard(catalog *menu.Catalog) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(catalog.Layout()))
	for _, labels := range catalog.Layout() {
		row := make([]tgbotapi.KeyboardButton, 0, len(labels))
		for _, label := range labels {
			row = append(row, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

// statusKeyboard lays the four statuses out two per row.
func statusKeyboard(row int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var current []tgbotapi.InlineKeyboardButton

	for _, status := range entity.LeadStatuses {
		current = append(current, tgbotapi.NewInlineKeyboardButtonData(
			statusButtonLabels[status],
			EncodeStatusCallback(row, status),
		))
		if len(current) == 2 {
			rows = append(rows, current)
			current = nil
		}
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
