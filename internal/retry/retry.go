// Package retry runs an operation a bounded number of times with a backoff
// schedule between failed attempts.
package retry

import (
	"context"
	"time"
)

// Backoff returns the wait after failed attempt i (1-indexed).
type Backoff func(attempt int) time.Duration

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

type Policy struct {
	Attempts int
	Backoff  Backoff
	Sleep    Sleeper // nil uses a timer
}

// Exponential yields base, 2*base, 4*base, ...
func Exponential(base time.Duration) Backoff {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		return base << (attempt - 1)
	}
}

// Do calls fn until it succeeds or Attempts calls have failed. There is no
// wait after the final attempt. It returns the number of calls made and the
// last error.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) error) (int, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = TimerSleep
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(ctx, i); err == nil {
			return i, nil
		}
		if i == attempts {
			break
		}
		if p.Backoff != nil {
			if serr := sleep(ctx, p.Backoff(i)); serr != nil {
				return i, err
			}
		}
	}
	return attempts, err
}

func TimerSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
