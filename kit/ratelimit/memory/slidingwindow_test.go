package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/superj80820/tinyurl/kit/ratelimit"
	"golang.org/x/sync/errgroup"
)

type fakeClock struct {
	lock sync.Mutex
	now  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.now
}

func (f *fakeClock) Add(d time.Duration) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.now = f.now.Add(d)
}

func createTestRateLimit(clock *fakeClock) *SlidingWindowRateLimit {
	return CreateSlidingWindowRateLimit(120, time.Minute, WithNow(clock.Now))
}

func TestSlidingWindowRateLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("accept up to max requests then reject", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1706558738, 0)}
		rateLimit := createTestRateLimit(clock)

		for i := 1; i <= 120; i++ {
			pass, lastRequests, _, err := rateLimit.Pass(ctx, "127.0.0.1")
			assert.Nil(t, err)
			assert.True(t, pass, "request %d", i)
			assert.Equal(t, 120-i, lastRequests)
			clock.Add(100 * time.Millisecond)
		}

		pass, lastRequests, expiry, err := rateLimit.Pass(ctx, "127.0.0.1")
		assert.Nil(t, err)
		assert.False(t, pass)
		assert.Equal(t, 0, lastRequests)
		assert.Equal(t, 48, expiry)
	})

	t.Run("window slides", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1706558738, 0)}
		rateLimit := createTestRateLimit(clock)

		for i := 0; i < 120; i++ {
			assert.Nil(t, rateLimit.CheckIfRateLimited("127.0.0.1"))
		}
		assert.ErrorIs(t, rateLimit.CheckIfRateLimited("127.0.0.1"), ratelimit.ErrRateLimited)

		clock.Add(time.Minute)
		assert.Nil(t, rateLimit.CheckIfRateLimited("127.0.0.1"), "requests exactly one window old are pruned")
	})

	t.Run("rejected requests consume budget", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1706558738, 0)}
		rateLimit := createTestRateLimit(clock)

		for i := 0; i < 120; i++ {
			assert.Nil(t, rateLimit.CheckIfRateLimited("127.0.0.1"))
		}
		clock.Add(30 * time.Second)
		for i := 0; i < 10; i++ {
			assert.ErrorIs(t, rateLimit.CheckIfRateLimited("127.0.0.1"), ratelimit.ErrRateLimited)
		}

		clock.Add(31 * time.Second)
		pass, lastRequests, expiry, err := rateLimit.Pass(ctx, "127.0.0.1")
		assert.Nil(t, err)
		assert.True(t, pass)
		assert.Equal(t, 120-11, lastRequests)
		assert.Equal(t, 29, expiry)
	})

	t.Run("keys are independent", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1706558738, 0)}
		rateLimit := createTestRateLimit(clock)

		for i := 0; i < 121; i++ {
			rateLimit.CheckIfRateLimited("10.0.0.1")
		}
		assert.ErrorIs(t, rateLimit.CheckIfRateLimited("10.0.0.1"), ratelimit.ErrRateLimited)
		assert.Nil(t, rateLimit.CheckIfRateLimited("10.0.0.2"))
	})
}

func TestSlidingWindowRateLimitSweep(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1706558738, 0)}
	rateLimit := createTestRateLimit(clock)

	assert.Nil(t, rateLimit.CheckIfRateLimited("10.0.0.1"))
	clock.Add(30 * time.Second)
	assert.Nil(t, rateLimit.CheckIfRateLimited("10.0.0.2"))
	assert.Equal(t, 2, rateLimit.Len())

	clock.Add(31 * time.Second)
	rateLimit.Sweep()
	assert.Equal(t, 1, rateLimit.Len())

	clock.Add(30 * time.Second)
	rateLimit.Sweep()
	assert.Equal(t, 0, rateLimit.Len())
}

func TestSlidingWindowRateLimitRun(t *testing.T) {
	rateLimit := CreateSlidingWindowRateLimit(120, time.Millisecond, WithSweepEvery(5*time.Millisecond))
	assert.Nil(t, rateLimit.CheckIfRateLimited("10.0.0.1"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- rateLimit.Run(ctx) }()

	assert.Eventually(t, func() bool { return rateLimit.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.Nil(t, <-done)
}

func TestSlidingWindowRateLimitConcurrent(t *testing.T) {
	rateLimit := CreateSlidingWindowRateLimit(120, time.Minute)

	var passCount, rejectCount atomic.Int64
	var eg errgroup.Group
	for i := 0; i < 200; i++ {
		eg.Go(func() error {
			err := rateLimit.CheckIfRateLimited("127.0.0.1")
			if errors.Is(err, ratelimit.ErrRateLimited) {
				rejectCount.Add(1)
				return nil
			} else if err != nil {
				return err
			}
			passCount.Add(1)
			return nil
		})
	}
	assert.Nil(t, eg.Wait())

	assert.Equal(t, int64(120), passCount.Load())
	assert.Equal(t, int64(80), rejectCount.Load())
}

func TestPruneShrinksAfterBurst(t *testing.T) {
	base := time.Unix(1706558738, 0)

	burst := make([]time.Time, 0, 1000)
	for i := 0; i < 1000; i++ {
		burst = append(burst, base)
	}
	burst = append(burst, base.Add(time.Minute))

	pruned := prune(burst, base)
	assert.Equal(t, []time.Time{base.Add(time.Minute)}, pruned)
	assert.LessOrEqual(t, cap(pruned), minShrinkCap)

	small := []time.Time{base, base.Add(time.Second), base.Add(2 * time.Second)}
	pruned = prune(small, base)
	assert.Equal(t, []time.Time{base.Add(time.Second), base.Add(2 * time.Second)}, pruned)
	assert.Equal(t, cap(small), cap(pruned))
}

func TestSlidingWindowRateLimitReleasesBurstCapacity(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1706558738, 0)}
	rateLimit := createTestRateLimit(clock)

	for i := 0; i < 1000; i++ {
		rateLimit.CheckIfRateLimited("10.0.0.1")
	}
	clock.Add(61 * time.Second)
	assert.Nil(t, rateLimit.CheckIfRateLimited("10.0.0.1"))

	rateLimit.lock.Lock()
	defer rateLimit.lock.Unlock()
	assert.Len(t, rateLimit.requests["10.0.0.1"], 1)
	assert.LessOrEqual(t, cap(rateLimit.requests["10.0.0.1"]), minShrinkCap)
}
