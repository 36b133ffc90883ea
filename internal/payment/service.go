package payment

import (
	"errors"
	"log/slog"
	"math"
	"time"

	apperrors "github.com/frahmantamala/payment-service/internal"
	paymentmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/payment"
	"github.com/google/uuid"
)

// Service implements the payment lifecycle: create, bounded update, cancel,
// fetch and paginated search. Every mutation runs its validation chain to
// completion before anything is written.
type Service struct {
	repo   RepositoryAPI
	cfg    apperrors.PaymentConfig
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, cfg apperrors.PaymentConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Pay creates a payment in PENDING with version 0 and a processing time
// computed once from the configured delay.
func (s *Service) Pay(dto *PaymentDTO) (*paymentmodel.Payment, error) {
	s.logger.Info("payment add in process", "customer_id", dto.CustomerID)

	if err := RunChecks(
		MinimumAmount(*dto.Amount, s.cfg.MinimumAmount),
	); err != nil {
		s.logger.Warn("payment validation failed", "error", err, "customer_id", dto.CustomerID)
		return nil, err
	}

	p := &paymentmodel.Payment{
		ID:              uuid.NewString(),
		CustomerID:      dto.CustomerID,
		PaymentMethodID: dto.PaymentMethodID,
		Amount:          *dto.Amount,
		Status:          paymentmodel.StatusPending,
		ProcessingTime:  paymentmodel.ProcessingTimeFrom(time.Now(), s.cfg.ProcessingDays),
	}

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create payment", "error", err, "customer_id", dto.CustomerID)
		return nil, apperrors.NewInternalError("failed to create payment", err)
	}

	s.logger.Info("payment add completed", "payment_id", p.ID)
	return p, nil
}

// Update modifies amount and payment method of a PENDING payment while its
// modification budget lasts. The chain order is deliberate: the cheapest,
// most general check runs first.
func (s *Service) Update(id string, dto *PaymentDTO) (*paymentmodel.Payment, error) {
	s.logger.Info("payment update in process", "payment_id", id)

	p, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	if err := RunChecks(
		MinimumAmount(*dto.Amount, s.cfg.MinimumAmount),
		ModificationBudget(p.Version, s.cfg.MaxModifications),
		PendingStatus(p.Status),
	); err != nil {
		s.logger.Warn("payment validation failed", "error", err, "payment_id", id)
		return nil, err
	}

	p.PaymentMethodID = dto.PaymentMethodID
	p.Amount = *dto.Amount

	saved, err := s.save(p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment update completed", "payment_id", id, "version", saved.Version)
	return saved, nil
}

// Cancel moves a PENDING payment to CANCELLED. Calling it twice on the same
// id succeeds once, then fails the pending-status check.
func (s *Service) Cancel(id string) (*paymentmodel.Payment, error) {
	s.logger.Info("payment cancel in process", "payment_id", id)

	p, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	if err := RunChecks(
		PendingStatus(p.Status),
	); err != nil {
		s.logger.Warn("payment validation failed", "error", err, "payment_id", id)
		return nil, err
	}

	p.Status = paymentmodel.StatusCancelled

	saved, err := s.save(p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment saved with cancel status", "payment_id", id)
	return saved, nil
}

func (s *Service) Get(id string) (*paymentmodel.Payment, error) {
	s.logger.Info("payment fetch in process", "payment_id", id)
	return s.getByID(id)
}

func (s *Service) Search(customerID string, page, size int) (*Page, error) {
	s.logger.Info("payment search in process", "customer_id", customerID, "page", page, "size", size)

	payments, total, err := s.repo.FindByCustomer(customerID, page, size)
	if err != nil {
		s.logger.Error("failed to search payments", "error", err, "customer_id", customerID)
		return nil, apperrors.NewInternalError("failed to search payments", err)
	}

	totalPages := 0
	if size > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(size)))
	}

	return &Page{
		Content:      payments,
		CurrentPage:  page,
		TotalRecords: total,
		TotalPages:   totalPages,
	}, nil
}

func (s *Service) getByID(id string) (*paymentmodel.Payment, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		s.logger.Error("failed to fetch payment", "error", err, "payment_id", id)
		return nil, apperrors.NewInternalError("failed to fetch payment", err)
	}
	return p, nil
}

func (s *Service) save(p *paymentmodel.Payment) (*paymentmodel.Payment, error) {
	saved, err := s.repo.Save(p)
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			s.logger.Warn("concurrent modification detected", "payment_id", p.ID, "version", p.Version)
			return nil, apperrors.ErrConcurrencyConflict
		}
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		s.logger.Error("failed to save payment", "error", err, "payment_id", p.ID)
		return nil, apperrors.NewInternalError("failed to save payment", err)
	}
	return saved, nil
}
