package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akabraham06/warp/models"
)

func testQuote(id string, expiresAt time.Time) *models.Quote {
	return &models.Quote{ID: id, ExpiresAt: expiresAt}
}

func TestClaimConsumesQuote(t *testing.T) {
	c := NewQuoteCache()
	c.Put(testQuote("q1", time.Now().Add(time.Minute)))

	require.NotNil(t, c.Get("q1"))
	require.NotNil(t, c.Claim("q1"))
	require.Nil(t, c.Claim("q1"))
	require.Nil(t, c.Get("q1"))
}

func TestClaimUnknownQuote(t *testing.T) {
	c := NewQuoteCache()
	require.Nil(t, c.Claim("missing"))
}

func TestClaimExpiredQuote(t *testing.T) {
	c := NewQuoteCache()
	c.Put(testQuote("q1", time.Now().Add(-time.Second)))

	require.Nil(t, c.Claim("q1"))
	// the expired entry is gone either way
	require.Nil(t, c.Get("q1"))
}

func TestGetHidesExpiredQuote(t *testing.T) {
	c := NewQuoteCache()
	c.Put(testQuote("q1", time.Now().Add(-time.Second)))

	// an expired quote is invisible even before the sweeper runs
	require.Nil(t, c.Get("q1"))
	require.Equal(t, 1, c.Len())
}

func TestConcurrentClaimSingleWinner(t *testing.T) {
	c := NewQuoteCache()
	c.Put(testQuote("q1", time.Now().Add(time.Minute)))

	const claimers = 32
	winners := make(chan *models.Quote, claimers)
	wg := sync.WaitGroup{}
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if q := c.Claim("q1"); q != nil {
				winners <- q
			}
		}()
	}
	wg.Wait()
	close(winners)

	won := 0
	for range winners {
		won++
	}
	require.Equal(t, 1, won)
}

func TestSweepEvictsOnlyExpired(t *testing.T) {
	c := NewQuoteCache()
	now := time.Now()
	c.Put(testQuote("expired-1", now.Add(-time.Minute)))
	c.Put(testQuote("expired-2", now.Add(-time.Second)))
	c.Put(testQuote("live", now.Add(time.Hour)))

	dropped := c.Sweep(now)
	require.Equal(t, 2, dropped)
	require.Equal(t, 1, c.Len())
	require.NotNil(t, c.Get("live"))
}
