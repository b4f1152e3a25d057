package assoofs

import (
	"context"
	"fmt"
)

// ctxMutex is a mutual-exclusion lock whose acquisition can be cancelled
// via a context, per the concurrency model's requirement that SB-lock and
// IS-lock acquisition be interruptible. It is a one-slot channel semaphore,
// the standard idiomatic substitute for sync.Mutex when acquisition needs
// to observe ctx.Done(); sync.Mutex itself has no such hook.
type ctxMutex struct {
	slot chan struct{}
}

func newCtxMutex() *ctxMutex {
	return &ctxMutex{slot: make(chan struct{}, 1)}
}

// Lock blocks until the lock is free or ctx is done, whichever comes
// first. On cancellation it returns ErrLockInterrupted and the lock
// state is left exactly as it was (unacquired).
func (m *ctxMutex) Lock(ctx context.Context) error {
	select {
	case m.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrLockInterrupted, ctx.Err())
	}
}

// Unlock releases the lock. Calling Unlock without a matching successful
// Lock is a programming error, as with sync.Mutex.
func (m *ctxMutex) Unlock() {
	<-m.slot
}
