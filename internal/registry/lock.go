package registry

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// readerSlots caps concurrent readers per lock. A writer takes every slot,
// so any value comfortably above the realistic reader count works.
const readerSlots = 1 << 20

// timedLock is a reader-writer lock whose acquisitions are bounded by a
// deadline. Readers take one semaphore slot, writers take them all.
type timedLock struct {
	sem     *semaphore.Weighted
	timeout time.Duration
}

func newTimedLock(timeout time.Duration) *timedLock {
	return &timedLock{sem: semaphore.NewWeighted(readerSlots), timeout: timeout}
}

func (l *timedLock) acquire(n int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	if err := l.sem.Acquire(ctx, n); err != nil {
		return ErrLockTimeout
	}
	return nil
}

func (l *timedLock) rlock() error { return l.acquire(1) }

func (l *timedLock) runlock() { l.sem.Release(1) }

func (l *timedLock) lock() error { return l.acquire(readerSlots) }

func (l *timedLock) unlock() { l.sem.Release(readerSlots) }
