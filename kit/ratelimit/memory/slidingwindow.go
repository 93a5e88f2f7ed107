package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/tinyurl/kit/ratelimit"
)

const minShrinkCap = 64

type SlidingWindowRateLimit struct {
	lock     sync.Mutex
	requests map[string][]time.Time

	maxRequests int
	window      time.Duration
	sweepEvery  time.Duration
	now         func() time.Time
}

type Option func(*SlidingWindowRateLimit)

func WithSweepEvery(duration time.Duration) Option {
	return func(s *SlidingWindowRateLimit) {
		s.sweepEvery = duration
	}
}

func WithNow(now func() time.Time) Option {
	return func(s *SlidingWindowRateLimit) {
		s.now = now
	}
}

func CreateSlidingWindowRateLimit(maxRequests int, window time.Duration, options ...Option) *SlidingWindowRateLimit {
	s := &SlidingWindowRateLimit{
		requests:    make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
		sweepEvery:  5 * time.Minute,
		now:         time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Pass records the request, rejected ones included, then compares the window size against maxRequests.
func (s *SlidingWindowRateLimit) Pass(ctx context.Context, key string) (pass bool, lastRequests, curExpiry int, err error) {
	s.lock.Lock()
	now := s.now()
	cutoff := now.Add(-s.window)
	timestamps := prune(s.requests[key], cutoff)
	timestamps = append(timestamps, now)
	s.requests[key] = timestamps
	count := len(timestamps)
	oldest := timestamps[0]
	s.lock.Unlock()

	lastRequests = s.maxRequests - count
	if lastRequests < 0 {
		lastRequests = 0
	}
	curExpiry = int(math.Ceil(oldest.Add(s.window).Sub(now).Seconds()))

	return count <= s.maxRequests, lastRequests, curExpiry, nil
}

func (s *SlidingWindowRateLimit) CheckIfRateLimited(ip string) error {
	pass, _, expiry, err := s.Pass(context.Background(), ip)
	if err != nil {
		return errors.Wrap(err, "check rate limit failed")
	}
	if !pass {
		return errors.Wrapf(ratelimit.ErrRateLimited, "ip %s, expiry: %d", ip, expiry)
	}
	return nil
}

// Sweep drops keys whose requests all fell out of the window.
func (s *SlidingWindowRateLimit) Sweep() {
	cutoff := s.now().Add(-s.window)

	s.lock.Lock()
	defer s.lock.Unlock()

	for key, timestamps := range s.requests {
		if len(timestamps) == 0 || !timestamps[len(timestamps)-1].After(cutoff) {
			delete(s.requests, key)
		}
	}
}

func (s *SlidingWindowRateLimit) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.requests)
}

// Run sweeps periodically until ctx is done.
func (s *SlidingWindowRateLimit) Run(ctx context.Context) error {
	if s.sweepEvery <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func prune(timestamps []time.Time, cutoff time.Time) []time.Time {
	idx := sort.Search(len(timestamps), func(i int) bool {
		return timestamps[i].After(cutoff)
	})
	if idx == 0 {
		return timestamps
	}
	rest := timestamps[idx:]
	// a burst leaves a large backing array behind, shrink it once the window drains
	if cap(timestamps) > minShrinkCap && cap(timestamps) > 4*len(rest) {
		return append(make([]time.Time, 0, 2*len(rest)+1), rest...)
	}
	return append(timestamps[:0], rest...)
}
