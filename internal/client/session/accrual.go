package session

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/sujeetunbeatable/liorea-cli/internal/client/api"
)

// runAccrual ticks the accrual loop until its context is cancelled. The
// first tick already happened synchronously in SetStudying.
func (s *Session) runAccrual(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.accrualTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.accrueTick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// accrueTick records one elapsed interval of studying: the unsaved counter
// and the self high-water mark each gain a minute. When the counter reaches
// the batch size, the batch moves to the durable outbox and a drain is
// attempted.
func (s *Session) accrueTick(ctx context.Context) {
	s.mu.Lock()
	if !s.studying || s.identity == "" {
		s.mu.Unlock()
		return
	}
	name := s.identity
	s.unsaved++
	s.selfFloor++
	var batch int
	if s.unsaved >= s.flushBatch {
		batch = s.unsaved
		s.unsaved = 0
	}
	s.mu.Unlock()

	if batch > 0 {
		s.flush(ctx, name, batch)
	}
}

// finalFlush commits whatever the counter holds when accrual stops, so only
// the sub-tick remainder is dropped.
func (s *Session) finalFlush(ctx context.Context) {
	s.mu.Lock()
	name := s.identity
	batch := s.unsaved
	s.unsaved = 0
	s.mu.Unlock()

	if batch > 0 && name != "" {
		s.flush(ctx, name, batch)
	}
}

// flush parks the batch in the outbox, then drains the outbox. A batch that
// cannot be sent stays parked for the next flush opportunity.
func (s *Session) flush(ctx context.Context, name string, minutes int) {
	if err := s.outbox.Enqueue(ctx, name, minutes); err != nil {
		s.log.Error(ctx, "failed to buffer study batch", "user", name, "minutes", minutes, "error", err)
		return
	}
	s.drainOutbox(ctx, name)
}

// drainOutbox sends parked batches oldest first, deleting each only after
// the remote service confirmed it. Draining stops at the first batch that
// cannot be delivered, preserving order.
func (s *Session) drainOutbox(ctx context.Context, name string) {
	batches, err := s.outbox.Pending(ctx, name)
	if err != nil {
		s.log.Error(ctx, "failed to read study outbox", "user", name, "error", err)
		return
	}

	for _, b := range batches {
		backoff := retry.WithMaxRetries(2, retry.NewFibonacci(250*time.Millisecond))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			err := s.backend.FlushStudyMinutes(ctx, b.Username, b.Minutes)
			if errors.Is(err, api.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		})
		if err != nil {
			s.log.Warn(ctx, "study flush failed, batch stays buffered",
				"user", b.Username, "minutes", b.Minutes, "error", err)
			return
		}
		if err := s.outbox.Delete(ctx, b.ID); err != nil {
			s.log.Error(ctx, "failed to confirm study batch", "id", b.ID, "error", err)
			return
		}
		s.log.Debug(ctx, "study batch flushed", "user", b.Username, "minutes", b.Minutes)
	}
}
