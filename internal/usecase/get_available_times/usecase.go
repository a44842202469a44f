package get_available_times

import (
	"context"
	"fmt"

	"github.com/mrgoksal/Chilliwili/internal/domain"
)

// UseCase use case получения свободных часов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	engine       AvailabilityEngine
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, availEngine AvailabilityEngine, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		engine:       availEngine,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает свободные часы начала на дату.
// Для прошедших дат список пуст. Для сегодняшней даты учитывается
// минимальный запас времени до начала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationHours
	if duration == 0 {
		duration = 1
	}

	now := uc.timeProvider.Now()

	// 2. Прошедшая дата, бронировать нечего
	if domain.DateOnly(req.Date).Before(domain.DateOnly(now)) {
		return &Response{Date: req.Date, AvailableHours: []int{}}, nil
	}

	// 3. Читаем брони целевой даты и предыдущего дня
	// Предыдущий день нужен для ночных броней, перешедших через полночь
	sameDay, err := uc.bookingRepo.GetActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	prevDay, err := uc.bookingRepo.GetActiveByDate(ctx, req.Date.AddDate(0, 0, -1))
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get previous day bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get previous day bookings: %v", ErrInternal, err)
	}

	// 4. Базовый список свободных часов для часовой брони
	starts, err := uc.engine.AvailableStarts(req.Date, sameDay, prevDay, &now)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: availability calculation failed: %v", err)
		return nil, fmt.Errorf("%w: availability calculation failed: %v", ErrInternal, err)
	}

	// 5. Для длинных броней отбрасываем часы, на которых желаемая
	// длительность не помещается
	if duration > 1 {
		starts, err = uc.filterByDuration(starts, duration, sameDay, prevDay)
		if err != nil {
			uc.logger.Error("GetAvailableTimes: duration filter failed: %v", err)
			return nil, fmt.Errorf("%w: duration filter failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("GetAvailableTimes: date=%s, duration=%dh, %d slots available",
		req.Date.Format(domain.DateFormat), duration, len(starts))

	return &Response{Date: req.Date, AvailableHours: starts}, nil
}

func (uc *UseCase) filterByDuration(starts []int, duration int, sameDay, prevDay []*domain.Booking) ([]int, error) {
	filtered := make([]int, 0, len(starts))
	for _, hour := range starts {
		res, err := uc.engine.Validate(hour, duration, sameDay, prevDay)
		if err != nil {
			return nil, err
		}
		if res.OK {
			filtered = append(filtered, hour)
		}
	}
	return filtered, nil
}

func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationHours < 0 || req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: durationHours must be between 1 and %d",
			ErrInvalidInput, domain.MaxDurationHours)
	}

	return nil
}
