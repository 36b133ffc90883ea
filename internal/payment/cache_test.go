package payment_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/payment-service/internal"
	paymentmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/payment"
	"github.com/frahmantamala/payment-service/internal/payment"
)

// In-memory cache for decorator testing
type fakeCache struct {
	entries map[string][]byte
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.entries[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

// Counting service to observe pass-through behaviour
type countingService struct {
	inner       payment.ServiceAPI
	getCalls    int
	searchCalls int
}

func (c *countingService) Pay(dto *payment.PaymentDTO) (*paymentmodel.Payment, error) {
	return c.inner.Pay(dto)
}

func (c *countingService) Update(id string, dto *payment.PaymentDTO) (*paymentmodel.Payment, error) {
	return c.inner.Update(id, dto)
}

func (c *countingService) Cancel(id string) (*paymentmodel.Payment, error) {
	return c.inner.Cancel(id)
}

func (c *countingService) Get(id string) (*paymentmodel.Payment, error) {
	c.getCalls++
	return c.inner.Get(id)
}

func (c *countingService) Search(customerID string, page, size int) (*payment.Page, error) {
	c.searchCalls++
	return c.inner.Search(customerID, page, size)
}

var _ = Describe("CachedService", func() {
	var (
		cached   *payment.CachedService
		counting *countingService
		cache    *fakeCache
		created  *paymentmodel.Payment
	)

	BeforeEach(func() {
		mockRepo := newMockPaymentRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := payment.NewService(mockRepo, apperrors.PaymentConfig{
			MinimumAmount:    0.5,
			MaxModifications: 3,
			ProcessingDays:   2,
		}, logger)
		counting = &countingService{inner: service}
		cache = newFakeCache()
		cached = payment.NewCachedService(counting, cache, time.Minute, logger)

		var err error
		created, err = cached.Pay(&payment.PaymentDTO{
			CustomerID:      "cust-1",
			Amount:          amountPtr(100.0),
			PaymentMethodID: "pm-1",
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Get", func() {
		It("should serve the second read from the cache", func() {
			_, err := cached.Get(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(counting.getCalls).To(Equal(1))

			p, err := cached.Get(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(counting.getCalls).To(Equal(1))
			Expect(p.ID).To(Equal(created.ID))
		})

		It("should fall through to the store when the cache errors", func() {
			cache.getErr = context.DeadlineExceeded

			_, err := cached.Get(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(counting.getCalls).To(Equal(1))
		})
	})

	Describe("Update", func() {
		It("should invalidate the cached record", func() {
			_, err := cached.Get(created.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = cached.Update(created.ID, &payment.PaymentDTO{
				CustomerID:      "cust-1",
				Amount:          amountPtr(200.0),
				PaymentMethodID: "pm-1",
			})
			Expect(err).NotTo(HaveOccurred())

			p, err := cached.Get(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(counting.getCalls).To(Equal(2))
			Expect(p.Amount).To(Equal(200.0))
		})
	})

	Describe("Cancel", func() {
		It("should invalidate the cached record", func() {
			_, err := cached.Get(created.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = cached.Cancel(created.ID)
			Expect(err).NotTo(HaveOccurred())

			p, err := cached.Get(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Status).To(Equal(paymentmodel.StatusCancelled))
		})
	})

	Describe("Search", func() {
		It("should cache search pages per customer, page and size", func() {
			_, err := cached.Search("cust-1", 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(counting.searchCalls).To(Equal(1))

			_, err = cached.Search("cust-1", 0, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(counting.searchCalls).To(Equal(1))

			_, err = cached.Search("cust-1", 1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(counting.searchCalls).To(Equal(2))
		})
	})
})
