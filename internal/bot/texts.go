package bot

const (
	textGreeting = "Привет! Я бот учёта картин.\n\nВыберите действие:"
	textHelp     = "Команды:\n" +
		"/start — главное меню\n" +
		"Кнопки:\n" +
		"• Внести картину\n" +
		"• Мои заказы"
	textUnknown = "Не понял команду. Выберите действие:"

	textAskTitle   = "Название?"
	textEmptyTitle = "Название не может быть пустым. Название?"
	textAskDate    = "Дата передачи в студию? (например 08.01.2026)"
	textBadDate    = "Не понял дату. Введите в формате ДД.ММ.ГГГГ, например 08.01.2026"
	textAskMonths  = "Срок хранения? (например 3 мес — только целые месяцы)"
	textBadMonths  = "Введите целое число месяцев, например: 3 или 3 мес"
	textRestart    = "Начнём заново.\n\nНазвание?"
	textReconfirm  = "Пожалуйста, отправьте \"Все верно\" или \"/new\"."
	textSaveFailed = "Не удалось сохранить заказ, попробуйте ещё раз."

	textConfirm = "Давайте проверим данные.\n" +
		"Картина: \"%s\"\n" +
		"Дата передачи в студию: %s\n" +
		"Срок хранения: %d мес\n" +
		"Дата, когда нужно забрать: %s\n\n" +
		"Отправьте: \"Все верно\" — если информация верна.\n" +
		"Отправьте: \"/new\" — если нужно изменить данные и внести новые."
	textSaved = "Заказ сохранён ✅\n\n" +
		"Картина: \"%s\"\n" +
		"Забрать до: %s"

	textNoOrders     = "У вас пока нет заказов."
	textOrdersHeader = "Вот ваши заказы:\n"
	textOrderLine    = "%d. Картина \"%s\". Забрать: %s"
	textListFailed   = "Не удалось получить заказы, попробуйте позже."
	textExportNote   = "Снизу файл Excel, в котором можете увидеть все свои заказы."

	cmdStart = "/start"
	cmdHelp  = "/help"
	cmdNew   = "/new"
)
