// Package cache holds issued quotes until they are claimed by a settlement
// attempt or expire. Claim is the primitive that prevents double-settlement:
// it looks up and removes a quote in one critical section, so exactly one
// concurrent claimer can win.
package cache

import (
	"sync"
	"time"

	"github.com/akabraham06/warp/models"
)

type QuoteCache interface {
	Put(quote *models.Quote)
	// Claim atomically removes and returns the quote, or nil if it is
	// unknown, expired, or already claimed.
	Claim(id string) *models.Quote
	// Get returns the quote without consuming it, or nil.
	Get(id string) *models.Quote
	// Sweep evicts expired quotes and returns how many were dropped.
	Sweep(now time.Time) int
	Len() int
}

func NewQuoteCache() QuoteCache {
	return &quoteCache{quotes: map[string]*models.Quote{}}
}

type quoteCache struct {
	mu     sync.Mutex
	quotes map[string]*models.Quote
}

func (c *quoteCache) Put(quote *models.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quotes[quote.ID] = quote
}

func (c *quoteCache) Claim(id string) *models.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()

	quote, ok := c.quotes[id]
	if !ok {
		return nil
	}
	delete(c.quotes, id)
	if !quote.ExpiresAt.IsZero() && time.Now().After(quote.ExpiresAt) {
		return nil
	}
	return quote
}

func (c *quoteCache) Get(id string) *models.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()

	quote, ok := c.quotes[id]
	if !ok {
		return nil
	}
	if !quote.ExpiresAt.IsZero() && time.Now().After(quote.ExpiresAt) {
		return nil
	}
	return quote
}

func (c *quoteCache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for id, quote := range c.quotes {
		if !quote.ExpiresAt.IsZero() && now.After(quote.ExpiresAt) {
			delete(c.quotes, id)
			dropped++
		}
	}
	return dropped
}

func (c *quoteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.quotes)
}
