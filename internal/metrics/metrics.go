// Package metrics объявляет счётчики Prometheus для сканера напоминаний,
// отправителя и бота.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReminderScansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminder_scans_total",
		Help: "Total number of completed reminder scans.",
	})

	RemindersEmittedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reminders_emitted_total",
		Help: "Total number of reminders published, by days left until pickup.",
	},
		[]string{"days_left"},
	)

	RemindersFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_failed_total",
		Help: "Total number of reminders that could not be published.",
	})

	RemindersDeliveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reminders_delivered_total",
		Help: "Total number of reminders delivered to the chat.",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders saved through the bot.",
	})
)
