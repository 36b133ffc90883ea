package customer

import (
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/frahmantamala/payment-service/internal"
	custmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/customer"
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

func (s *Service) Register(dto *CustomerDTO) (*custmodel.Customer, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("customer validation error", "error", err)
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err != nil && !stderrors.Is(err, ErrNotFound) {
		s.logger.Error("failed to check customer email", "error", err)
		return nil, errors.NewInternalError("failed to register customer", err)
	} else if existing != nil {
		return nil, errors.NewConflictError("Customer email already registered", errors.ErrCodeDuplicateCustomer)
	}

	now := s.now()
	c := &custmodel.Customer{
		ID:          uuid.NewString(),
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		Email:       dto.Email,
		DateOfBirth: dto.DateOfBirth,
		PhoneNumber: dto.PhoneNumber,
		DateCreated: now,
		DateUpdated: now,
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create customer", "error", err)
		return nil, errors.NewInternalError("failed to register customer", err)
	}

	s.logger.Info("customer registered", "customer_id", c.ID)
	return c, nil
}

func (s *Service) Update(id string, dto *CustomerDTO) (*custmodel.Customer, error) {
	existing, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("customer validation error", "error", err, "customer_id", id)
		return nil, err
	}

	if dto.Email != existing.Email {
		if other, err := s.repo.GetByEmail(dto.Email); err != nil && !stderrors.Is(err, ErrNotFound) {
			s.logger.Error("failed to check customer email", "error", err, "customer_id", id)
			return nil, errors.NewInternalError("failed to update customer", err)
		} else if other != nil {
			return nil, errors.NewConflictError("Customer email already registered", errors.ErrCodeDuplicateCustomer)
		}
	}

	existing.FirstName = dto.FirstName
	existing.LastName = dto.LastName
	existing.Email = dto.Email
	existing.DateOfBirth = dto.DateOfBirth
	existing.PhoneNumber = dto.PhoneNumber
	existing.DateUpdated = s.now()

	if err := s.repo.Save(existing); err != nil {
		s.logger.Error("failed to update customer", "error", err, "customer_id", id)
		return nil, errors.NewInternalError("failed to update customer", err)
	}

	s.logger.Info("customer updated", "customer_id", existing.ID)
	return existing, nil
}

func (s *Service) Get(id string) (*custmodel.Customer, error) {
	return s.getByID(id)
}

func (s *Service) Delete(id string) error {
	if _, err := s.getByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete customer", "error", err, "customer_id", id)
		return errors.NewInternalError("failed to delete customer", err)
	}
	s.logger.Info("customer deleted", "customer_id", id)
	return nil
}

func (s *Service) getByID(id string) (*custmodel.Customer, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		if stderrors.Is(err, ErrNotFound) {
			return nil, errors.ErrCustomerNotFound
		}
		s.logger.Error("failed to get customer", "error", err, "customer_id", id)
		return nil, errors.NewInternalError("failed to get customer", err)
	}
	return c, nil
}
