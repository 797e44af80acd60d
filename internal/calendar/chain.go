package calendar

import (
	"context"
	"errors"
	"fmt"

	"voice-server/internal/observability"
)

var ErrNoProviderAvailable = errors.New("no calendar provider available")

// Chain tries calendar providers in order: external scheduling service
// first, internal slot store second. Availability from the external
// provider is cached for a short window; bookings are never cached.
type Chain struct {
	providers []Provider
	cache     AvailabilityCache
	logger    *observability.Logger
}

func NewChain(cache AvailabilityCache, logger *observability.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		cache:     cache,
		logger:    logger,
	}
}

// CheckAvailability returns the open slots for the query. An empty result
// from a reachable provider is genuine non-availability, not a failure, and
// does not fall through to the next provider.
func (c *Chain) CheckAvailability(ctx context.Context, query AvailabilityQuery) ([]Slot, error) {
	key := CacheKey(query)
	if query.ProviderHint == "" {
		if slots, ok := c.cache.Get(ctx, key); ok {
			c.logger.Debug(ctx, "availability served from cache")
			return slots, nil
		}
	}

	var lastErr error
	for _, provider := range c.providers {
		if !provider.Configured() {
			continue
		}
		if query.ProviderHint != "" && provider.Source() != query.ProviderHint {
			continue
		}

		slots, err := provider.CheckAvailability(ctx, query)
		if err != nil {
			lastErr = err
			c.logger.Error(ctx, fmt.Sprintf("%s availability check failed, trying next provider", provider.Source()), err)
			continue
		}

		if provider.Source() == SourceExternal && query.ProviderHint == "" {
			c.cache.Set(ctx, key, slots)
		}
		return slots, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all calendar providers failed: %w", lastErr)
	}
	return nil, ErrNoProviderAvailable
}

// BookAppointment books through the provider that produced the slot. A
// business negative (Success=false) is returned on first attempt without
// consulting any other provider; only the caller decides what to say next.
func (c *Chain) BookAppointment(ctx context.Context, query AvailabilityQuery, slot Slot, customer Customer) (*BookingResult, error) {
	for _, provider := range c.providers {
		if provider.Source() != slot.Source {
			continue
		}
		if !provider.Configured() {
			break
		}
		return provider.BookAppointment(ctx, query, slot, customer)
	}
	return nil, fmt.Errorf("%w for source %s", ErrNoProviderAvailable, slot.Source)
}
