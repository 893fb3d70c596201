package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(maxRetries int) *Config {
	return &Config{
		MaxRetries:    maxRetries,
		BackoffFactor: 2.0,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	}
}

func TestRetrier_Do(t *testing.T) {
	tests := []struct {
		name       string
		maxRetries int
		failUntil  int // op fails for the first N calls
		wantCalls  int
		wantErr    bool
	}{
		{
			name:       "first_attempt_succeeds",
			maxRetries: 3,
			failUntil:  0,
			wantCalls:  1,
			wantErr:    false,
		},
		{
			name:       "succeeds_after_retries",
			maxRetries: 3,
			failUntil:  2,
			wantCalls:  3,
			wantErr:    false,
		},
		{
			name:       "exhausts_retries",
			maxRetries: 2,
			failUntil:  10,
			wantCalls:  3,
			wantErr:    true,
		},
		{
			name:       "zero_retries",
			maxRetries: 0,
			failUntil:  1,
			wantCalls:  1,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRetrier(fastConfig(tt.maxRetries))

			calls := 0
			err := r.Do(context.Background(), func() error {
				calls++
				if calls <= tt.failUntil {
					return errors.New("transient")
				}
				return nil
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetrier_ContextCancelled(t *testing.T) {
	r := NewRetrier(&Config{
		MaxRetries:    5,
		BackoffFactor: 2.0,
		InitialDelay:  time.Hour,
		MaxDelay:      time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := r.Do(ctx, func() error {
		calls++
		return errors.New("always fails")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
