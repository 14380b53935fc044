package rabbitmq

const (
	// ExchangeReminders direct-обменник, в который планировщик кладёт напоминания.
	ExchangeReminders = "reminders"
	// QueueRemindersDue очередь, из которой читает отправитель.
	QueueRemindersDue = "reminders.due"
	// RoutingKeyDue ключ маршрутизации напоминаний о заборе.
	RoutingKeyDue = "due"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// ReminderQueues возвращает очереди, которые нужно объявить для доставки напоминаний.
func ReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueRemindersDue, RoutingKey: RoutingKeyDue},
	}
}
