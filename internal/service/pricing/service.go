package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrgoksal/Chilliwili/internal/domain"
	pricingRepo "github.com/mrgoksal/Chilliwili/internal/infra/storage/pricing"
	"github.com/mrgoksal/Chilliwili/internal/service/pricing/models"
)

// Service сервис управления тарифами
type Service struct {
	pricingRepo PricingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(pricingRepo PricingRepository, logger Logger) *Service {
	return &Service{
		pricingRepo: pricingRepo,
		logger:      logger,
	}
}

// GetRules возвращает все тарифы, новые первыми
func (s *Service) GetRules(ctx context.Context) (*models.PriceRuleListResponse, error) {
	rules, err := s.pricingRepo.GetActiveRules(ctx)
	if err != nil {
		s.logger.Error("GetRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetRules - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRuleList(rules), nil
}

// CreateRule создает тариф
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.PriceRuleResponse, error) {
	if err := validateCreateRule(req); err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, err
	}

	rule := &domain.PriceRule{
		DateFrom:           domain.DateOnly(req.DateFrom),
		DateTo:             domain.DateOnly(req.DateTo),
		HourFrom:           req.HourFrom,
		HourTo:             req.HourTo,
		PricePerHour:       req.PricePerHour,
		PricePerExtraGuest: req.PricePerExtraGuest,
		MaxGuestsIncluded:  req.MaxGuestsIncluded,
		ChargeMode:         domain.ExtraGuestChargeMode(req.ChargeMode),
	}

	created, err := s.pricingRepo.CreateRule(ctx, rule)
	if err != nil {
		s.logger.Error("CreateRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: rule id=%d created for %s - %s, hours %d-%d",
		created.ID, created.DateFrom.Format(domain.DateFormat),
		created.DateTo.Format(domain.DateFormat), created.HourFrom, created.HourTo)

	return models.FromDomainRule(created), nil
}

// DeleteRule удаляет тариф
func (s *Service) DeleteRule(ctx context.Context, id int64) error {
	if err := s.pricingRepo.DeleteRule(ctx, id); err != nil {
		if errors.Is(err, pricingRepo.ErrRuleNotFound) {
			s.logger.Warn("DeleteRule: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteRule: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteRule: rule id=%d deleted", id)
	return nil
}

// GetDefaults возвращает глобальный тариф
func (s *Service) GetDefaults(ctx context.Context) (*models.DefaultsResponse, error) {
	defaults, err := s.pricingRepo.GetDefaults(ctx)
	if err != nil {
		if errors.Is(err, pricingRepo.ErrDefaultsNotFound) {
			return nil, ErrDefaultsNotConfigured
		}
		s.logger.Error("GetDefaults: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetDefaults - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDefaults(defaults), nil
}

// UpdateDefaults обновляет глобальный тариф
func (s *Service) UpdateDefaults(ctx context.Context, req *models.UpdateDefaultsRequest) (*models.DefaultsResponse, error) {
	if err := validateDefaults(req); err != nil {
		s.logger.Warn("UpdateDefaults: validation failed: %v", err)
		return nil, err
	}

	defaults := &domain.DefaultPricing{
		PricePerHour:       req.PricePerHour,
		PricePerExtraGuest: req.PricePerExtraGuest,
		MaxGuestsIncluded:  req.MaxGuestsIncluded,
	}

	if err := s.pricingRepo.UpdateDefaults(ctx, defaults); err != nil {
		if errors.Is(err, pricingRepo.ErrDefaultsNotFound) {
			return nil, ErrDefaultsNotConfigured
		}
		s.logger.Error("UpdateDefaults: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateDefaults - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDefaults: base price=%d, extra guest=%d, included=%d",
		req.PricePerHour, req.PricePerExtraGuest, req.MaxGuestsIncluded)

	return models.FromDomainDefaults(defaults), nil
}

func validateCreateRule(req *models.CreateRuleRequest) error {
	if req.DateFrom.IsZero() || req.DateTo.IsZero() {
		return fmt.Errorf("%w: dateFrom and dateTo are required", ErrInvalidInput)
	}
	if domain.DateOnly(req.DateTo).Before(domain.DateOnly(req.DateFrom)) {
		return fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}
	if req.HourFrom < 0 || req.HourFrom > 23 {
		return fmt.Errorf("%w: hourFrom must be between 0 and 23", ErrInvalidInput)
	}
	if req.HourTo < 1 || req.HourTo > 24 {
		return fmt.Errorf("%w: hourTo must be between 1 and 24", ErrInvalidInput)
	}
	if req.HourTo <= req.HourFrom {
		return fmt.Errorf("%w: hourTo must be greater than hourFrom", ErrInvalidInput)
	}
	if req.PricePerHour <= 0 {
		return fmt.Errorf("%w: pricePerHour must be positive", ErrInvalidInput)
	}
	if req.PricePerExtraGuest < 0 {
		return fmt.Errorf("%w: pricePerExtraGuest must not be negative", ErrInvalidInput)
	}
	if req.MaxGuestsIncluded < 1 {
		return fmt.Errorf("%w: maxGuestsIncluded must be positive", ErrInvalidInput)
	}

	mode := domain.ExtraGuestChargeMode(req.ChargeMode)
	if mode != domain.ChargePerBooking && mode != domain.ChargePerHour {
		return fmt.Errorf("%w: chargeMode must be %q or %q",
			ErrInvalidInput, domain.ChargePerBooking, domain.ChargePerHour)
	}

	return nil
}

func validateDefaults(req *models.UpdateDefaultsRequest) error {
	if req.PricePerHour <= 0 {
		return fmt.Errorf("%w: pricePerHour must be positive", ErrInvalidInput)
	}
	if req.PricePerExtraGuest < 0 {
		return fmt.Errorf("%w: pricePerExtraGuest must not be negative", ErrInvalidInput)
	}
	if req.MaxGuestsIncluded < 1 {
		return fmt.Errorf("%w: maxGuestsIncluded must be positive", ErrInvalidInput)
	}
	return nil
}
