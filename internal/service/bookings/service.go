package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/engine"
	"github.com/mrgoksal/Chilliwili/internal/infra/events"
	bookingRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/booking"
	"github.com/mrgoksal/Chilliwili/internal/service/bookings/models"
	"github.com/mrgoksal/Chilliwili/pkg/types"
)

const notifyTimeout = 5 * time.Second

// Service сервис управления жизненным циклом бронирований
type Service struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	pricingRepo  PricingRepository
	engine       AvailabilityEngine
	txManager    TransactionManager
	notifier     Notifier
	publisher    EventPublisher
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// publisher может быть nil, если шина событий не настроена
func NewService(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	pricingRepo PricingRepository,
	availEngine AvailabilityEngine,
	txManager TransactionManager,
	notifier Notifier,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		pricingRepo:  pricingRepo,
		engine:       availEngine,
		txManager:    txManager,
		notifier:     notifier,
		publisher:    publisher,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает бронирования гостя
// activeOnly отсекает отмененные
func (s *Service) GetCustomerBookings(ctx context.Context, customerID int64, activeOnly bool) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: customer=%d, activeOnly=%v", customerID, activeOnly)

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, customerID, activeOnly)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetByPeriod получает бронирования за период для админки
func (s *Service) GetByPeriod(ctx context.Context, req *models.GetPeriodBookingsRequest) (*models.BookingListResponse, error) {
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: period end is before period start", ErrInvalidInput)
	}

	s.logger.Info("GetByPeriod: %s to %s, includeInactive=%v",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.IncludeInactive)

	bookings, err := s.bookingRepo.GetByPeriod(ctx, req.From, req.To, req.IncludeInactive)
	if err != nil {
		s.logger.Error("GetByPeriod: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByPeriod - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Confirm переводит бронирование из pending в confirmed
func (s *Service) Confirm(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, "Confirm")
	if err != nil {
		return nil, err
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%d has status %s", id, booking.Status)
		return nil, fmt.Errorf("%w: booking is %s", ErrCannotConfirm, booking.Status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: failed to update status for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusConfirmed
	s.logger.Info("Confirm: booking id=%d confirmed", id)

	s.notifyAsync(fmt.Sprintf(
		"✅ Бронь #%d подтверждена\n📅 %s, %s, %d ч.",
		booking.ID, booking.Date.Format(domain.DateFormat), booking.StartTime.String(), booking.DurationHours,
	))
	s.notifyCustomer(ctx, booking, fmt.Sprintf(
		"✅ Ваша бронь на %s в %s подтверждена. Ждем вас!",
		booking.Date.Format(domain.DateFormat), booking.StartTime.String(),
	))
	s.publishEvent(events.EventBookingConfirmed, booking)

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование. Операция идемпотентна: повторная отмена
// уже отмененной брони не является ошибкой.
// При req.CustomerID != nil отмена разрешена только владельцу брони
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) error {
	booking, err := s.getBooking(ctx, req.BookingID, "Cancel")
	if err != nil {
		return err
	}

	if req.CustomerID != nil && booking.CustomerID != *req.CustomerID {
		s.logger.Warn("Cancel: customer=%d tried to cancel foreign booking id=%d", *req.CustomerID, req.BookingID)
		return ErrAccessDenied
	}

	if !booking.IsActive() {
		s.logger.Info("Cancel: booking id=%d is already cancelled", req.BookingID)
		return nil
	}

	if err := s.bookingRepo.CancelActive(ctx, req.BookingID); err != nil {
		// Конкурентная отмена успела раньше, для вызывающего результат тот же
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil
		}
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCancelled
	s.logger.Info("Cancel: booking id=%d cancelled", req.BookingID)

	s.notifyAsync(fmt.Sprintf(
		"❌ Бронь #%d отменена\n📅 %s, %s, %d ч.",
		booking.ID, booking.Date.Format(domain.DateFormat), booking.StartTime.String(), booking.DurationHours,
	))
	// Владельца предупреждаем только при отмене администратором,
	// о собственной отмене гость знает сам
	if req.CustomerID == nil {
		s.notifyCustomer(ctx, booking, fmt.Sprintf(
			"❌ Ваша бронь на %s в %s отменена. Свяжитесь с нами, если это ошибка.",
			booking.Date.Format(domain.DateFormat), booking.StartTime.String(),
		))
	}
	s.publishEvent(events.EventBookingCancelled, booking)

	return nil
}

// Update изменяет бронирование. При переносе даты или времени доступность
// нового слота проверяется заново в сериализуемой транзакции, без учета
// самой переносимой брони, и стоимость пересчитывается по тарифам
func (s *Service) Update(ctx context.Context, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: update contains no fields", ErrInvalidInput)
	}

	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	var updated *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, req.BookingID, "Update")
		if err != nil {
			return err
		}

		if !booking.CanBeUpdated() {
			s.logger.Warn("Update: booking id=%d has status %s", req.BookingID, booking.Status)
			return fmt.Errorf("%w: booking is %s", ErrCannotUpdate, booking.Status)
		}

		// Целевые значения слота после применения обновления
		newDate := booking.Date
		if req.Date != nil {
			newDate = domain.DateOnly(*req.Date)
		}
		newStartHour, err := booking.StartHour()
		if err != nil {
			return fmt.Errorf("%w: Update - malformed stored start time: %v", ErrInternal, err)
		}
		if req.StartHour != nil {
			newStartHour = *req.StartHour
		}
		newDuration := booking.DurationHours
		if req.DurationHours != nil {
			newDuration = *req.DurationHours
		}
		newGuests := booking.GuestCount
		if req.GuestCount != nil {
			newGuests = *req.GuestCount
		}

		update := domain.BookingUpdate{
			Date:          req.Date,
			DurationHours: req.DurationHours,
			GuestCount:    req.GuestCount,
			BookingName:   req.BookingName,
			BookingPhone:  req.BookingPhone,
			Notes:         req.Notes,
		}
		if req.Date != nil {
			d := domain.DateOnly(*req.Date)
			update.Date = &d
		}
		if req.StartHour != nil {
			st, err := types.NewTimeStringFromHour(*req.StartHour)
			if err != nil {
				return fmt.Errorf("%w: invalid start hour: %v", ErrInvalidInput, err)
			}
			update.StartTime = &st
		}

		// Перенос слота проверяем заново, исключая саму переносимую бронь
		if req.ChangesSlot() {
			sameDay, err := s.bookingRepo.GetActiveByDate(txCtx, newDate)
			if err != nil {
				return fmt.Errorf("%w: Update - failed to get bookings: %v", ErrInternal, err)
			}
			prevDay, err := s.bookingRepo.GetActiveByDate(txCtx, newDate.AddDate(0, 0, -1))
			if err != nil {
				return fmt.Errorf("%w: Update - failed to get previous day bookings: %v", ErrInternal, err)
			}

			res, err := s.engine.Validate(newStartHour, newDuration,
				excludeBooking(sameDay, booking.ID), excludeBooking(prevDay, booking.ID))
			if err != nil {
				return fmt.Errorf("%w: Update - availability check failed: %v", ErrInternal, err)
			}
			if !res.OK {
				s.logger.Warn("Update: new slot rejected for booking id=%d, reason=%s", req.BookingID, res.Reason)
				return fmt.Errorf("%w: %s", ErrSlotTaken, res.Message)
			}
		}

		// Пересчет стоимости, если изменилось что-то влияющее на цену
		if req.ChangesSlot() || req.GuestCount != nil {
			rules, err := s.pricingRepo.GetActiveRules(txCtx)
			if err != nil {
				return fmt.Errorf("%w: Update - failed to get price rules: %v", ErrInternal, err)
			}
			defaults, err := s.pricingRepo.GetDefaults(txCtx)
			if err != nil {
				return fmt.Errorf("%w: Update - failed to get default pricing: %v", ErrInternal, err)
			}

			price := engine.ResolvePrice(newDate, newStartHour, newGuests, newDuration, rules, *defaults)
			update.TotalPrice = &price
		}

		if err := s.bookingRepo.UpdateFields(txCtx, req.BookingID, update); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		updated, err = s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return fmt.Errorf("%w: Update - failed to reload booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: booking id=%d updated, price=%d", updated.ID, updated.TotalPrice)

	s.notifyAsync(fmt.Sprintf(
		"✏️ Бронь #%d изменена\n📅 %s, %s, %d ч., %d гостей, %d ₽",
		updated.ID, updated.Date.Format(domain.DateFormat), updated.StartTime.String(),
		updated.DurationHours, updated.GuestCount, updated.TotalPrice,
	))
	s.notifyCustomer(ctx, updated, fmt.Sprintf(
		"✏️ Ваша бронь изменена: %s в %s, %d ч., стоимость %d ₽.",
		updated.Date.Format(domain.DateFormat), updated.StartTime.String(),
		updated.DurationHours, updated.TotalPrice,
	))
	s.publishEvent(events.EventBookingUpdated, updated)

	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование безвозвратно. Только для админки,
// штатный путь для гостей - отмена
func (s *Service) Delete(ctx context.Context, id int64) error {
	booking, err := s.getBooking(ctx, id, "Delete")
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: failed to delete booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%d deleted", id)

	s.notifyAsync(fmt.Sprintf(
		"🗑 Бронь #%d удалена\n📅 %s, %s, %d ч.",
		booking.ID, booking.Date.Format(domain.DateFormat), booking.StartTime.String(), booking.DurationHours,
	))
	if booking.IsActive() {
		s.notifyCustomer(ctx, booking, fmt.Sprintf(
			"❌ Ваша бронь на %s в %s отменена. Свяжитесь с нами, если это ошибка.",
			booking.Date.Format(domain.DateFormat), booking.StartTime.String(),
		))
	}

	return nil
}

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func validateUpdate(req *models.UpdateBookingRequest) error {
	if req.StartHour != nil && (*req.StartHour < 0 || *req.StartHour > 23) {
		return fmt.Errorf("%w: startHour must be between 0 and 23", ErrInvalidInput)
	}
	if req.DurationHours != nil &&
		(*req.DurationHours < domain.MinDurationHours || *req.DurationHours > domain.MaxDurationHours) {
		return fmt.Errorf("%w: durationHours must be between %d and %d",
			ErrInvalidInput, domain.MinDurationHours, domain.MaxDurationHours)
	}
	if req.GuestCount != nil && (*req.GuestCount < domain.MinGuests || *req.GuestCount > domain.MaxGuests) {
		return fmt.Errorf("%w: guestCount must be between %d and %d",
			ErrInvalidInput, domain.MinGuests, domain.MaxGuests)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}
	return nil
}

// excludeBooking возвращает список без брони с указанным ID
func excludeBooking(bookings []*domain.Booking, id int64) []*domain.Booking {
	filtered := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func (s *Service) notifyAsync(text string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		s.notifier.NotifyAdmins(ctx, text)
	}()
}

// notifyCustomer уведомляет владельца брони, если у него есть Telegram.
// Как и все уведомления, best-effort: ошибка доставки только логируется
func (s *Service) notifyCustomer(ctx context.Context, b *domain.Booking, text string) {
	customer, err := s.customerRepo.GetByID(ctx, b.CustomerID)
	if err != nil {
		s.logger.Warn("Failed to load customer %d for booking %d notification: %v", b.CustomerID, b.ID, err)
		return
	}
	if customer.TelegramID == nil {
		return
	}

	chatID := *customer.TelegramID
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(notifyCtx, chatID, text); err != nil {
			s.logger.Warn("Failed to notify customer %d about booking %d: %v", b.CustomerID, b.ID, err)
		}
	}()
}

func (s *Service) publishEvent(eventType events.EventType, b *domain.Booking) {
	if s.publisher == nil {
		return
	}

	event := events.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Date:       b.Date.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		Duration:   b.DurationHours,
		TotalPrice: b.TotalPrice,
		OccurredAt: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish event %s for booking %d: %v", eventType, b.ID, err)
		}
	}()
}
