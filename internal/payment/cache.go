package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	internal "github.com/frahmantamala/payment-service/internal"
	paymentmodel "github.com/frahmantamala/payment-service/internal/core/datamodel/payment"
)

// cacheOpTimeout bounds every cache round trip so a slow redis never stalls
// the request path.
const cacheOpTimeout = 2 * time.Second

// Cache is the minimal key-value surface the read-through decorator needs.
// The redis-backed implementation lives in internal/cache.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// CachedService decorates a ServiceAPI with read-through caching on the
// query paths. Mutations pass straight through and invalidate the record's
// entry; search entries are only ever evicted by TTL.
type CachedService struct {
	svc    ServiceAPI
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedService(svc ServiceAPI, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedService {
	return &CachedService{
		svc:    svc,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func paymentKey(id string) string {
	return "payment:" + id
}

func searchKey(customerID string, page, size int) string {
	return fmt.Sprintf("payment:search:%s:%d:%d", customerID, page, size)
}

func (c *CachedService) Pay(dto *PaymentDTO) (*paymentmodel.Payment, error) {
	return c.svc.Pay(dto)
}

func (c *CachedService) Update(id string, dto *PaymentDTO) (*paymentmodel.Payment, error) {
	p, err := c.svc.Update(id, dto)
	if err != nil {
		return nil, err
	}
	c.invalidate(id)
	return p, nil
}

func (c *CachedService) Cancel(id string) (*paymentmodel.Payment, error) {
	p, err := c.svc.Cancel(id)
	if err != nil {
		return nil, err
	}
	c.invalidate(id)
	return p, nil
}

func (c *CachedService) Get(id string) (*paymentmodel.Payment, error) {
	ctx, cancel := internal.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if data, err := c.cache.Get(ctx, paymentKey(id)); err == nil && data != nil {
		var p paymentmodel.Payment
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		// corrupt entry, fall through to the store
		c.logger.Warn("dropping unreadable cache entry", "key", paymentKey(id))
	}

	p, err := c.svc.Get(id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.cache.Set(ctx, paymentKey(id), data, c.ttl); err != nil {
			c.logger.Warn("failed to cache payment", "error", err, "payment_id", id)
		}
	}
	return p, nil
}

func (c *CachedService) Search(customerID string, page, size int) (*Page, error) {
	ctx, cancel := internal.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	key := searchKey(customerID, page, size)

	if data, err := c.cache.Get(ctx, key); err == nil && data != nil {
		var result Page
		if err := json.Unmarshal(data, &result); err == nil {
			return &result, nil
		}
	}

	result, err := c.svc.Search(customerID, page, size)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("failed to cache payment search", "error", err, "customer_id", customerID)
		}
	}
	return result, nil
}

func (c *CachedService) invalidate(id string) {
	ctx, cancel := internal.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := c.cache.Del(ctx, paymentKey(id)); err != nil {
		c.logger.Warn("failed to invalidate payment cache", "error", err, "payment_id", id)
	}
}
