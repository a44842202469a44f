// Package scheduler фоновые задачи по расписанию: утренняя сводка
// по броням дня для администраторов
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/service/bookings/models"
)

const digestTimeout = 30 * time.Second

// Scheduler запускает cron задачи сервиса
type Scheduler struct {
	cron     *cron.Cron
	bookings BookingService
	notifier Notifier
	logger   Logger
}

// New создает планировщик. Задачи добавляются до Start
func New(bookings BookingService, notifier Notifier, logger Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		bookings: bookings,
		notifier: notifier,
		logger:   logger,
	}
}

// AddDailyDigest регистрирует рассылку сводки по броням текущего дня
func (s *Scheduler) AddDailyDigest(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sendDailyDigest); err != nil {
		return fmt.Errorf("failed to schedule daily digest: %w", err)
	}

	s.logger.Info("Daily digest scheduled with spec %q", spec)
	return nil
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) sendDailyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	today := domain.DateOnly(time.Now())

	resp, err := s.bookings.GetByPeriod(ctx, &models.GetPeriodBookingsRequest{
		From: today,
		To:   today,
	})
	if err != nil {
		s.logger.Error("DailyDigest: failed to load bookings: %v", err)
		return
	}

	s.notifier.NotifyAdmins(ctx, formatDigest(today, resp.Bookings))

	s.logger.Info("DailyDigest: sent, %d bookings for %s", len(resp.Bookings), today.Format(domain.DateFormat))
}

func formatDigest(date time.Time, bookings []models.BookingResponse) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📅 Брони на %s\n", date.Format("02.01.2006"))

	if len(bookings) == 0 {
		sb.WriteString("\nНа сегодня броней нет")
		return sb.String()
	}

	var totalGuests int
	var totalRevenue int64

	for _, b := range bookings {
		name := "без имени"
		if b.BookingName != nil && *b.BookingName != "" {
			name = *b.BookingName
		}

		fmt.Fprintf(&sb, "\n• %s, %d ч, %d гостей, %s (#%d, %s)",
			b.StartTime, b.DurationHours, b.GuestCount, name, b.ID, b.Status)

		totalGuests += b.GuestCount
		totalRevenue += b.TotalPrice
	}

	fmt.Fprintf(&sb, "\n\nИтого: %d брони, %d гостей, %d ₽", len(bookings), totalGuests, totalRevenue)

	return sb.String()
}
