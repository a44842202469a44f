package expenses

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	expenseRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/expense"
	"github.com/mrgoksal/Chilliwili/internal/service/expenses/models"
	"github.com/mrgoksal/Chilliwili/pkg/ptr"
)

// Service сервис учета расходов и финансовой сводки
type Service struct {
	expenseRepo ExpenseRepository
	bookingRepo BookingStatsRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса расходов
func NewService(expenseRepo ExpenseRepository, bookingRepo BookingStatsRepository, logger Logger) *Service {
	return &Service{
		expenseRepo: expenseRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CreateExpense создает запись о расходе
func (s *Service) CreateExpense(ctx context.Context, req *models.CreateExpenseRequest) (*models.ExpenseResponse, error) {
	if err := validateCreateExpense(req); err != nil {
		s.logger.Warn("CreateExpense: validation failed: %v", err)
		return nil, err
	}

	expense := &domain.Expense{
		Date:     domain.DateOnly(req.Date),
		Amount:   req.Amount,
		Category: ptr.Ptr(req.Category),
	}
	if req.Description != "" {
		expense.Description = ptr.Ptr(req.Description)
	}

	created, err := s.expenseRepo.Create(ctx, expense)
	if err != nil {
		s.logger.Error("CreateExpense: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateExpense - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateExpense: expense id=%d created, amount=%d, category=%s",
		created.ID, created.Amount, req.Category)

	return models.FromDomainExpense(created), nil
}

// GetExpenses возвращает расходы за период вместе с итоговой суммой
func (s *Service) GetExpenses(ctx context.Context, req *models.PeriodRequest) (*models.ExpenseListResponse, error) {
	if err := validatePeriod(req); err != nil {
		return nil, err
	}

	from := req.From.Format(domain.DateFormat)
	to := req.To.Format(domain.DateFormat)

	expenses, err := s.expenseRepo.GetByPeriod(ctx, from, to)
	if err != nil {
		s.logger.Error("GetExpenses: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetExpenses - repository error: %v", ErrInternal, err)
	}

	total, err := s.expenseRepo.TotalByPeriod(ctx, from, to)
	if err != nil {
		s.logger.Error("GetExpenses: failed to get total: %v", err)
		return nil, fmt.Errorf("%w: GetExpenses - failed to get total: %v", ErrInternal, err)
	}

	return models.FromDomainExpenseList(expenses, total), nil
}

// DeleteExpense удаляет запись о расходе
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, expenseRepo.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		s.logger.Error("DeleteExpense: repository error for expense id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteExpense - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteExpense: expense id=%d deleted", id)
	return nil
}

// GetStatistics возвращает финансовую сводку за период: агрегаты по броням,
// сумма расходов и чистая прибыль
func (s *Service) GetStatistics(ctx context.Context, req *models.PeriodRequest) (*models.StatisticsResponse, error) {
	if err := validatePeriod(req); err != nil {
		return nil, err
	}

	stats, err := s.bookingRepo.GetStats(ctx, req.From, req.To)
	if err != nil {
		s.logger.Error("GetStatistics: failed to get booking stats: %v", err)
		return nil, fmt.Errorf("%w: GetStatistics - failed to get booking stats: %v", ErrInternal, err)
	}

	totalExpenses, err := s.expenseRepo.TotalByPeriod(ctx,
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	if err != nil {
		s.logger.Error("GetStatistics: failed to get expenses total: %v", err)
		return nil, fmt.Errorf("%w: GetStatistics - failed to get expenses total: %v", ErrInternal, err)
	}

	return &models.StatisticsResponse{
		From:          req.From.Format(domain.DateFormat),
		To:            req.To.Format(domain.DateFormat),
		TotalBookings: stats.TotalBookings,
		TotalRevenue:  stats.TotalRevenue,
		AvgGuests:     stats.AvgGuests,
		AvgDuration:   stats.AvgDuration,
		TotalExpenses: totalExpenses,
		NetProfit:     stats.TotalRevenue - totalExpenses,
	}, nil
}

func validateCreateExpense(req *models.CreateExpenseRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if req.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	return nil
}

func validatePeriod(req *models.PeriodRequest) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: period boundaries are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: period end is before period start", ErrInvalidInput)
	}
	return nil
}
