package handlers

const (
	textContactPrompt   = "📞 Напиши своё имя и телефон (например: Анна, +77001234567):"
	textContactReprompt = "❗ Укажите номер телефона (пример: +77001234567):"
	textThanks          = "✅ Спасибо! Мы скоро свяжемся с вами 💬"
	textCancelled       = "Заявка отменена. Выбери пункт меню 👇"

	textRemoteStoreError = "⚠️ Ошибка при добавлении в Google Sheets:\n%s"
	textLocalStoreError  = "⚠️ Ошибка при сохранении резервной копии (CSV):\n%s"
	textNewLead          = "📬 Новая заявка:\n%s\nОт: @%s\n\nИзменить статус можно командой:\n`/lead %d`"

	textPermissionDenied = "⛔ Только администратор может изменять статусы."
	textLeadUsage        = "❗ Использование: /lead <UserID>"
	textLeadNotFound     = "⚠️ Лид с таким UserID не найден."
	textLeadFound        = "📋 Лид найден:\n👤 %s\n📞 %s\n💬 @%s\n🕒 %s\n📍 Статус: %s"
	textGenericError     = "⚠️ Ошибка: %s"

	textStatusAnswer      = "✅ Статус изменён на: %s"
	textStatusUpdated     = "✅ Статус лида обновлён: %s"
	textStatusUpdateError = "⚠️ Ошибка при изменении статуса: %s"

	TextStartupNotice = "✅ Бот успешно запущен и подключён к Google Sheets!"

	defaultFirstName = "Клиент"
)
