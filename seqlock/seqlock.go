// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// Package seqlock provides a hybrid optimistic/pessimistic lock for
// collection engines.
//
// The lock supports three access modes: exclusive write, shared read, and
// optimistic read. Optimistic readers never block; they capture a Stamp,
// read, then call Validate. A writer bumps the sequence counter before and
// after its critical section, so the counter is odd while a write is in
// progress and any completed write changes it. A reader that observes an
// unchanged even counter on both sides of its read is guaranteed an
// untorn result.
//
// The optimistic path reads shared state without synchronization; the
// stamp protocol, not the memory model, rules out torn results. The race
// detector will flag optimistic reads raced by writers.
//
// Usage:
//
//	var lock seqlock.Lock
//
//	stamp := lock.Optimistic()
//	v := read()
//	if !lock.Validate(stamp) {
//	    guard := lock.RLock()
//	    v = read()
//	    guard.Release()
//	}
package seqlock

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrConflict is returned when a read guard cannot be upgraded to a write
// guard because other access is in flight.
var ErrConflict = errors.New("concurrent modification")

// Lock is the hybrid lock. The zero value is ready to use.
// A Lock must not be copied after first use.
type Lock struct {
	mu      sync.Mutex
	turn    *sync.Cond
	readers int
	writer  bool
	seq     atomic.Uint64
}

// cond lazily creates the wait condition. Callers must hold mu.
func (lock *Lock) cond() *sync.Cond {
	if lock.turn == nil {
		lock.turn = sync.NewCond(&lock.mu)
	}
	return lock.turn
}

// Lock acquires exclusive write access, blocking until no writer and no
// pessimistic readers remain.
func (lock *Lock) Lock() *Guard {
	lock.mu.Lock()
	for lock.writer || lock.readers > 0 {
		lock.cond().Wait()
	}
	lock.writer = true
	lock.seq.Add(1) // odd: write in progress
	lock.mu.Unlock()
	return &Guard{lock: lock, write: true}
}

// TryLock acquires exclusive write access without blocking.
// Returns nil, false if any access is currently held.
func (lock *Lock) TryLock() (*Guard, bool) {
	lock.mu.Lock()
	if lock.writer || lock.readers > 0 {
		lock.mu.Unlock()
		return nil, false
	}
	lock.writer = true
	lock.seq.Add(1)
	lock.mu.Unlock()
	return &Guard{lock: lock, write: true}, true
}

// RLock acquires shared read access, blocking only while a writer is
// active. Any number of readers may hold the lock at once.
func (lock *Lock) RLock() *Guard {
	lock.mu.Lock()
	for lock.writer {
		lock.cond().Wait()
	}
	lock.readers++
	lock.mu.Unlock()
	return &Guard{lock: lock}
}

// TryRLock acquires shared read access without blocking.
// Returns nil, false if a writer is active.
func (lock *Lock) TryRLock() (*Guard, bool) {
	lock.mu.Lock()
	if lock.writer {
		lock.mu.Unlock()
		return nil, false
	}
	lock.readers++
	lock.mu.Unlock()
	return &Guard{lock: lock}, true
}

// Optimistic captures the current sequence as a Stamp without blocking.
// The stamp is already invalid if a writer was active at capture time;
// callers should check Validate (or Stamp.Valid) before trusting any value
// derived from the read.
func (lock *Lock) Optimistic() Stamp {
	return Stamp(lock.seq.Load())
}

// Validate reports whether no write occurred since stamp was captured.
// A false result means every value read under the stamp must be discarded.
func (lock *Lock) Validate(stamp Stamp) bool {
	return stamp.Valid() && lock.seq.Load() == uint64(stamp)
}

// Sequence returns the raw sequence counter. Odd values indicate a write
// in progress.
func (lock *Lock) Sequence() uint64 {
	return lock.seq.Load()
}

func (lock *Lock) unlock() {
	lock.mu.Lock()
	lock.writer = false
	lock.seq.Add(1) // even: write complete
	if lock.turn != nil {
		lock.turn.Broadcast()
	}
	lock.mu.Unlock()
}

func (lock *Lock) runlock() {
	lock.mu.Lock()
	lock.readers--
	if lock.readers == 0 && lock.turn != nil {
		lock.turn.Broadcast()
	}
	lock.mu.Unlock()
}

// upgrade converts a held read into a write. Succeeds only when the caller
// is the sole reader; otherwise returns ErrConflict and the read remains
// held.
func (lock *Lock) upgrade() error {
	lock.mu.Lock()
	if lock.readers != 1 {
		lock.mu.Unlock()
		return ErrConflict
	}
	lock.readers = 0
	lock.writer = true
	lock.seq.Add(1)
	lock.mu.Unlock()
	return nil
}

// downgrade converts a held write into a read without a release window.
func (lock *Lock) downgrade() {
	lock.mu.Lock()
	lock.writer = false
	lock.readers = 1
	lock.seq.Add(1)
	if lock.turn != nil {
		lock.turn.Broadcast()
	}
	lock.mu.Unlock()
}

// Stamp is a sequence snapshot captured by an optimistic reader.
type Stamp uint64

// Valid reports whether the stamp could ever validate. A stamp captured
// while a writer was active (odd sequence) is permanently invalid.
func (stamp Stamp) Valid() bool {
	return stamp&1 == 0
}
