package payment_test

import (
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/payment-service/internal"
	paymentmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/payment"
	"github.com/frahmantamala/payment-service/internal/payment"
)

// Mock repository for testing
type mockPaymentRepository struct {
	payments    map[string]*paymentmodel.Payment
	createError error
	getError    error
	saveError   error
	findError   error
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{
		payments: make(map[string]*paymentmodel.Payment),
	}
}

func (m *mockPaymentRepository) Create(p *paymentmodel.Payment) error {
	if m.createError != nil {
		return m.createError
	}
	p.Version = 0
	now := time.Now()
	p.DateCreated = now
	p.DateUpdated = now
	copied := *p
	m.payments[p.ID] = &copied
	return nil
}

func (m *mockPaymentRepository) GetByID(id string) (*paymentmodel.Payment, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	p, exists := m.payments[id]
	if !exists {
		return nil, payment.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockPaymentRepository) Save(p *paymentmodel.Payment) (*paymentmodel.Payment, error) {
	if m.saveError != nil {
		return nil, m.saveError
	}
	stored, exists := m.payments[p.ID]
	if !exists {
		return nil, payment.ErrNotFound
	}
	if stored.Version != p.Version {
		return nil, payment.ErrVersionConflict
	}
	p.Version++
	p.DateUpdated = time.Now()
	copied := *p
	m.payments[p.ID] = &copied
	return p, nil
}

func (m *mockPaymentRepository) BulkTransition(fromStatus, toStatus string) (int64, error) {
	var count int64
	for _, p := range m.payments {
		if p.Status == fromStatus {
			p.Status = toStatus
			p.Version++
			count++
		}
	}
	return count, nil
}

func (m *mockPaymentRepository) FindByCustomer(customerID string, page, size int) ([]*paymentmodel.Payment, int64, error) {
	if m.findError != nil {
		return nil, 0, m.findError
	}
	var all []*paymentmodel.Payment
	for _, p := range m.payments {
		if p.CustomerID == customerID {
			all = append(all, p)
		}
	}
	total := int64(len(all))

	start := page * size
	if start >= len(all) {
		return []*paymentmodel.Payment{}, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func amountPtr(v float64) *float64 { return &v }

var _ = Describe("PaymentService", func() {
	var (
		service  *payment.Service
		mockRepo *mockPaymentRepository
		cfg      apperrors.PaymentConfig
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockPaymentRepository()
		cfg = apperrors.PaymentConfig{
			MinimumAmount:    0.5,
			MaxModifications: 3,
			ProcessingDays:   2,
		}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = payment.NewService(mockRepo, cfg, logger)
	})

	Describe("Pay", func() {
		It("should create a pending payment with version zero", func() {
			dto := &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(320.0),
				PaymentMethodID: "pm-1",
			}

			p, err := service.Pay(dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).NotTo(BeEmpty())
			Expect(p.Status).To(Equal(paymentmodel.StatusPending))
			Expect(p.Version).To(Equal(0))
			Expect(p.Amount).To(Equal(320.0))
		})

		It("should set processing time to midnight UTC after the configured delay", func() {
			dto := &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(100.0),
				PaymentMethodID: "pm-1",
			}

			p, err := service.Pay(dto)
			Expect(err).NotTo(HaveOccurred())

			expected := paymentmodel.ProcessingTimeFrom(time.Now(), cfg.ProcessingDays)
			Expect(p.ProcessingTime).To(Equal(expected))
			Expect(p.ProcessingTime.Hour()).To(Equal(0))
			Expect(p.ProcessingTime.Minute()).To(Equal(0))
		})

		It("should reject an amount below the minimum", func() {
			dto := &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(0.2),
				PaymentMethodID: "pm-1",
			}

			_, err := service.Pay(dto)
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidAmount))
			Expect(appErr.Message).To(Equal("Minimum amount 0.5 is required"))
			Expect(mockRepo.payments).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		var created *paymentmodel.Payment

		BeforeEach(func() {
			var err error
			created, err = service.Pay(&payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(100.0),
				PaymentMethodID: "pm-1",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should update amount and method and bump the version", func() {
			updated, err := service.Update(created.ID, &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(250.0),
				PaymentMethodID: "pm-2",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Amount).To(Equal(250.0))
			Expect(updated.PaymentMethodID).To(Equal("pm-2"))
			Expect(updated.Version).To(Equal(1))
		})

		It("should not change the processing time on update", func() {
			updated, err := service.Update(created.ID, &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(250.0),
				PaymentMethodID: "pm-1",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ProcessingTime).To(Equal(created.ProcessingTime))
		})

		It("should exhaust the modification budget", func() {
			for i := 0; i < cfg.MaxModifications; i++ {
				_, err := service.Update(created.ID, &payment.PaymentDTO{
					CustomerID:      "cust-1",
					Amount:          amountPtr(100.0 + float64(i)),
					PaymentMethodID: "pm-1",
				})
				Expect(err).NotTo(HaveOccurred())
			}

			_, err := service.Update(created.ID, &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(500.0),
				PaymentMethodID: "pm-1",
			})
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeModificationExhausted))
			Expect(appErr.Message).To(Equal("Payment modification exhausted"))
		})

		It("should check the amount before the modification budget", func() {
			// drive the version to the budget
			for i := 0; i < cfg.MaxModifications; i++ {
				_, err := service.Update(created.ID, &payment.PaymentDTO{
					CustomerID:      "cust-1",
					Amount:          amountPtr(100.0),
					PaymentMethodID: "pm-1",
				})
				Expect(err).NotTo(HaveOccurred())
			}

			// both checks would fail; the amount check must win
			_, err := service.Update(created.ID, &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(0.1),
				PaymentMethodID: "pm-1",
			})
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidAmount))
		})

		It("should reject an update on a cancelled payment", func() {
			_, err := service.Cancel(created.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(created.ID, &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(250.0),
				PaymentMethodID: "pm-1",
			})
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidState))
		})

		It("should map a missing payment to not found", func() {
			_, err := service.Update("no-such-id", &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(250.0),
				PaymentMethodID: "pm-1",
			})
			Expect(err).To(Equal(apperrors.ErrPaymentNotFound))
		})

		It("should surface a concurrent modification as a conflict", func() {
			mockRepo.saveError = payment.ErrVersionConflict

			_, err := service.Update(created.ID, &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(250.0),
				PaymentMethodID: "pm-1",
			})
			Expect(err).To(Equal(apperrors.ErrConcurrencyConflict))
		})
	})

	Describe("Cancel", func() {
		var created *paymentmodel.Payment

		BeforeEach(func() {
			var err error
			created, err = service.Pay(&payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(100.0),
				PaymentMethodID: "pm-1",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should cancel a pending payment", func() {
			p, err := service.Cancel(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Status).To(Equal(paymentmodel.StatusCancelled))
		})

		It("should fail the second cancel", func() {
			_, err := service.Cancel(created.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Cancel(created.ID)
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidState))
			Expect(appErr.Message).To(Equal("Payment cannot be updated"))
		})
	})

	Describe("Get", func() {
		It("should return not found for an unknown id", func() {
			_, err := service.Get("missing")
			Expect(err).To(Equal(apperrors.ErrPaymentNotFound))
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			for i := 0; i < 12; i++ {
				_, err := service.Pay(&payment.PaymentDTO{
					CustomerID:      "cust-1",
					Amount:          amountPtr(10.0 + float64(i)),
					PaymentMethodID: "pm-1",
				})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should page results and report totals", func() {
			page, err := service.Search("cust-1", 0, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Content).To(HaveLen(5))
			Expect(page.CurrentPage).To(Equal(0))
			Expect(page.TotalRecords).To(Equal(int64(12)))
			Expect(page.TotalPages).To(Equal(3))
		})

		It("should return an empty page past the end", func() {
			page, err := service.Search("cust-1", 5, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Content).To(BeEmpty())
			Expect(page.TotalRecords).To(Equal(int64(12)))
		})

		It("should return an empty page for an unknown customer", func() {
			page, err := service.Search("cust-none", 0, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Content).To(BeEmpty())
			Expect(page.TotalRecords).To(Equal(int64(0)))
			Expect(page.TotalPages).To(Equal(0))
		})
	})
})
