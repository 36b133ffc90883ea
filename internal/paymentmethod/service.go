package paymentmethod

import (
	stderrors "errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	errors "github.com/frahmantamala/payment-service/internal"
	pmmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/paymentmethod"
	"github.com/frahmantamala/payment-service/pkg/cardvalidator"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Add(dto *PaymentMethodDTO) (*pmmodel.PaymentMethod, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("payment method validation error", "error", err)
		return nil, err
	}
	if err := s.validateDetails(dto); err != nil {
		s.logger.Error("payment method validation error", "error", err)
		return nil, err
	}
	if err := s.checkDuplicate(dto); err != nil {
		return nil, err
	}

	pm := dto.toModel()
	pm.ID = uuid.NewString()
	now := s.now()
	pm.DateCreated = now
	pm.DateUpdated = now

	if err := s.repo.Create(pm); err != nil {
		s.logger.Error("failed to create payment method", "error", err, "customer_id", dto.CustomerID)
		return nil, errors.NewInternalError("failed to create payment method", err)
	}

	s.logger.Info("payment method created", "payment_method_id", pm.ID, "customer_id", pm.CustomerID, "type", pm.PaymentType)
	return pm, nil
}

func (s *Service) Update(id string, dto *PaymentMethodDTO) (*pmmodel.PaymentMethod, error) {
	existing, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("payment method validation error", "error", err, "payment_method_id", id)
		return nil, err
	}
	if err := s.validateDetails(dto); err != nil {
		s.logger.Error("payment method validation error", "error", err, "payment_method_id", id)
		return nil, err
	}

	updated := dto.toModel()
	updated.ID = existing.ID
	updated.DateCreated = existing.DateCreated
	updated.DateUpdated = s.now()

	if err := s.repo.Save(updated); err != nil {
		s.logger.Error("failed to update payment method", "error", err, "payment_method_id", id)
		return nil, errors.NewInternalError("failed to update payment method", err)
	}

	s.logger.Info("payment method updated", "payment_method_id", updated.ID)
	return updated, nil
}

func (s *Service) Get(id string) (*pmmodel.PaymentMethod, error) {
	return s.getByID(id)
}

func (s *Service) Delete(id string) error {
	if _, err := s.getByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete payment method", "error", err, "payment_method_id", id)
		return errors.NewInternalError("failed to delete payment method", err)
	}
	s.logger.Info("payment method deleted", "payment_method_id", id)
	return nil
}

func (s *Service) Search(customerID string, page, size int) (*Page, error) {
	methods, total, err := s.repo.FindByCustomer(customerID, page, size)
	if err != nil {
		s.logger.Error("failed to search payment methods", "error", err, "customer_id", customerID)
		return nil, errors.NewInternalError("failed to search payment methods", err)
	}

	totalPages := 0
	if size > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(size)))
	}
	return &Page{
		Content:      methods,
		CurrentPage:  page,
		TotalRecords: total,
		TotalPages:   totalPages,
	}, nil
}

func (s *Service) getByID(id string) (*pmmodel.PaymentMethod, error) {
	pm, err := s.repo.GetByID(id)
	if err != nil {
		if stderrors.Is(err, ErrNotFound) {
			return nil, errors.ErrPaymentMethodNotFound
		}
		s.logger.Error("failed to get payment method", "error", err, "payment_method_id", id)
		return nil, errors.NewInternalError("failed to get payment method", err)
	}
	return pm, nil
}

// validateDetails runs the type-specific format checks on top of the shape
// validation the DTO already did.
func (s *Service) validateDetails(dto *PaymentMethodDTO) *errors.AppError {
	switch dto.PaymentType {
	case pmmodel.TypeCard:
		return s.validateCard(dto)
	case pmmodel.TypeBankAccount:
		return s.validateBankAccount(dto)
	}
	return nil
}

func (s *Service) validateCard(dto *PaymentMethodDTO) *errors.AppError {
	if dto.CardType == nil || !cardvalidator.IsSupportedCardType(*dto.CardType) {
		return errors.NewValidationError("Card type is not supported", errors.ErrCodeCardNumberInvalid)
	}
	if dto.CardNumber == nil || !cardvalidator.IsValidCardNumber(*dto.CardType, *dto.CardNumber) {
		return errors.NewValidationError("Card number is invalid", errors.ErrCodeCardNumberInvalid)
	}
	if dto.ExpirationMonth == nil || dto.ExpirationYear == nil ||
		cardvalidator.IsExpired(*dto.ExpirationMonth, *dto.ExpirationYear, s.now()) {
		return errors.NewValidationError("Card is already expired", errors.ErrCodeCardExpired)
	}
	return nil
}

func (s *Service) validateBankAccount(dto *PaymentMethodDTO) *errors.AppError {
	if dto.RoutingNumber == nil || !cardvalidator.IsValidRoutingNumber(*dto.RoutingNumber) {
		return errors.NewValidationError("Routing number is invalid", errors.ErrCodeRoutingNumberInvalid)
	}
	if dto.AccountNumber == nil || !cardvalidator.IsValidAccountNumber(*dto.AccountNumber) {
		return errors.NewValidationError("Account number is invalid", errors.ErrCodeAccountNumberInvalid)
	}
	return nil
}

// checkDuplicate rejects a second method with the same card or account number
// under one customer.
func (s *Service) checkDuplicate(dto *PaymentMethodDTO) error {
	var (
		existing *pmmodel.PaymentMethod
		err      error
	)
	switch dto.PaymentType {
	case pmmodel.TypeCard:
		existing, err = s.repo.FindByCustomerAndCardNumber(dto.CustomerID, *dto.CardNumber)
	case pmmodel.TypeBankAccount:
		existing, err = s.repo.FindByCustomerAndAccountNumber(dto.CustomerID, *dto.AccountNumber)
	}
	if err != nil && !stderrors.Is(err, ErrNotFound) {
		s.logger.Error("failed to check duplicate payment method", "error", err, "customer_id", dto.CustomerID)
		return errors.NewInternalError("failed to check duplicate payment method", err)
	}
	if existing != nil {
		return errors.NewConflictError("Payment method already exists", errors.ErrCodeDuplicatePaymentMethod)
	}
	return nil
}
