package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/studio-orders/internal/lib/calendar"
	"github.com/magabrotheeeer/studio-orders/internal/lib/sl"
)

// Scheduler периодически запускает Scanner. Защиты от повторной отправки нет:
// частота запусков определяет частоту напоминаний.
type Scheduler struct {
	scanner  *Scanner
	location *time.Location
	clock    func() time.Time
	log      *slog.Logger
}

// NewScheduler создаёт планировщик. Пустой clock заменяется на time.Now,
// пустая location на UTC.
func NewScheduler(scanner *Scanner, location *time.Location, clock func() time.Time, log *slog.Logger) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &Scheduler{
		scanner:  scanner,
		location: location,
		clock:    clock,
		log:      log,
	}
}

// Today возвращает текущий календарный день в настроенной зоне.
func (s *Scheduler) Today() calendar.Date {
	return calendar.FromTime(s.clock().In(s.location))
}

// Run выполняет проход сразу, затем с периодом interval, пока не отменён ctx.
// При interval <= 0 выполняется только первый проход.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	s.runOnce(ctx)
	if interval <= 0 {
		s.log.Error("reminder scheduler needs a positive interval", slog.Duration("interval", interval))
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.scanner.Scan(ctx, s.Today()); err != nil {
		s.log.Error("reminder scan failed", sl.Err(err))
	}
}
