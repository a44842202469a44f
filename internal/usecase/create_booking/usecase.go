package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	"github.com/mrgoksal/Chilliwili/internal/engine"
	"github.com/mrgoksal/Chilliwili/internal/infra/events"
	pricingRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/pricing"
	"github.com/mrgoksal/Chilliwili/pkg/types"
)

const notifyTimeout = 5 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	pricingRepo  PricingRepository
	engine       AvailabilityEngine
	txManager    TransactionManager
	notifier     Notifier
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// publisher может быть nil, если шина событий не настроена
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	pricingRepo PricingRepository,
	availEngine AvailabilityEngine,
	txManager TransactionManager,
	notifier Notifier,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		pricingRepo:  pricingRepo,
		engine:       availEngine,
		txManager:    txManager,
		notifier:     notifier,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка идут в одной сериализуемой транзакции,
// поэтому две конкурирующие брони на один слот не могут пройти обе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: name=%s, date=%s, start=%02d:00, duration=%dh, guests=%d",
		req.CustomerName, req.Date.Format(domain.DateFormat), req.StartHour, req.DurationHours, req.GuestCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Проверка минимального запаса времени для сегодняшних броней
	if err := validateLeadTime(req.Date, req.StartHour, now); err != nil {
		uc.logger.Warn("CreateBooking: lead time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Находим или создаем профиль гостя
		customer, err := uc.customerRepo.FindOrCreate(txCtx, &domain.Customer{
			Name:       req.CustomerName,
			Phone:      req.CustomerPhone,
			TelegramID: req.TelegramID,
			Username:   req.Username,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to find or create customer: %v", err)
			return fmt.Errorf("%w: failed to find or create customer: %v", ErrInternal, err)
		}

		// 5.2. Читаем брони целевой даты и предыдущего дня с блокировкой (FOR UPDATE)
		// Предыдущий день нужен для ночных броней, перешедших через полночь
		sameDay, err := uc.bookingRepo.GetActiveByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		prevDay, err := uc.bookingRepo.GetActiveByDate(txCtx, req.Date.AddDate(0, 0, -1))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get previous day bookings: %v", err)
			return fmt.Errorf("%w: failed to get previous day bookings: %v", ErrInternal, err)
		}

		// 5.3. Проверяем доступность слота
		res, err := uc.engine.Validate(req.StartHour, req.DurationHours, sameDay, prevDay)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if !res.OK {
			uc.logger.Warn("CreateBooking: slot rejected, reason=%s", res.Reason)
			return rejectionError(res)
		}

		// 5.4. Рассчитываем стоимость по действующим тарифам
		rules, err := uc.pricingRepo.GetActiveRules(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get price rules: %v", err)
			return fmt.Errorf("%w: failed to get price rules: %v", ErrInternal, err)
		}

		defaults, err := uc.pricingRepo.GetDefaults(txCtx)
		if err != nil {
			if errors.Is(err, pricingRepo.ErrDefaultsNotFound) {
				uc.logger.Error("CreateBooking: default pricing is not configured")
				return ErrPricingNotConfigured
			}
			uc.logger.Error("CreateBooking: failed to get default pricing: %v", err)
			return fmt.Errorf("%w: failed to get default pricing: %v", ErrInternal, err)
		}

		totalPrice := engine.ResolvePrice(req.Date, req.StartHour, req.GuestCount, req.DurationHours, rules, *defaults)

		startTime, err := types.NewTimeStringFromHour(req.StartHour)
		if err != nil {
			uc.logger.Error("CreateBooking: invalid start hour %d: %v", req.StartHour, err)
			return fmt.Errorf("%w: invalid start hour: %v", ErrInvalidInput, err)
		}

		// 5.5. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			CustomerID:    customer.ID,
			Date:          domain.DateOnly(req.Date),
			StartTime:     startTime,
			DurationHours: req.DurationHours,
			GuestCount:    req.GuestCount,
			TotalPrice:    totalPrice,
			Status:        domain.StatusPending,
			BookingName:   req.BookingName,
			BookingPhone:  req.BookingPhone,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%d", result.ID, result.TotalPrice)

	// 6. Уведомления и события после коммита, бронирование уже состоялось
	uc.notifyCreated(result, req)
	uc.publishCreated(result)

	return &Response{
		ID:            result.ID,
		CustomerID:    result.CustomerID,
		Date:          result.Date,
		StartTime:     result.StartTime,
		DurationHours: result.DurationHours,
		GuestCount:    result.GuestCount,
		TotalPrice:    result.TotalPrice,
		Status:        string(result.Status),
		BookingName:   result.BookingName,
		BookingPhone:  result.BookingPhone,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// rejectionError конвертирует отказ движка в ошибку usecase
func rejectionError(res engine.Result) error {
	switch res.Reason {
	case engine.ReasonOutsideOperatingHours:
		return fmt.Errorf("%w: %s", ErrOutsideOperatingHours, res.Message)
	case engine.ReasonExceedsClosingTime:
		return fmt.Errorf("%w: %s", ErrExceedsClosingTime, res.Message)
	case engine.ReasonSpilloverConflict:
		return fmt.Errorf("%w: %s", ErrSpilloverConflict, res.Message)
	default:
		return fmt.Errorf("%w: %s", ErrSlotTaken, res.Message)
	}
}

// notifyCreated отправляет уведомление администраторам в фоне
func (uc *UseCase) notifyCreated(b *domain.Booking, req *Request) {
	name := req.CustomerName
	if b.BookingName != nil {
		name = *b.BookingName
	}
	phone := req.CustomerPhone
	if b.BookingPhone != nil {
		phone = *b.BookingPhone
	}

	startHour, err := b.StartHour()
	if err != nil {
		uc.logger.Error("CreateBooking: failed to format notification for booking %d: %v", b.ID, err)
		return
	}
	endHour := (startHour + b.DurationHours) % domain.HoursPerDay

	text := fmt.Sprintf(
		"🆕 Новая бронь #%d\n📅 %s\n🕐 %02d:00 - %02d:00\n👥 Гостей: %d\n👤 %s\n📞 %s\n💰 %d ₽",
		b.ID,
		b.Date.Format(domain.DateFormat),
		startHour, endHour,
		b.GuestCount,
		name, phone,
		b.TotalPrice,
	)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		uc.notifier.NotifyAdmins(ctx, text)
	}()
}

// publishCreated публикует событие создания брони в фоне
func (uc *UseCase) publishCreated(b *domain.Booking) {
	if uc.publisher == nil {
		return
	}

	event := events.BookingEvent{
		Type:       events.EventBookingCreated,
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
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Error("CreateBooking: failed to publish event for booking %d: %v", b.ID, err)
		}
	}()
}
