// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package seqlock

// Guard is a scoped proof of access. Release must be called on every exit
// path; releasing twice is a no-op. The zero Guard (and None) hold
// nothing, so code paths that conditionally lock can release uniformly.
type Guard struct {
	lock     *Lock
	write    bool
	upgraded bool
	released bool
}

// None returns an inert guard that holds no lock. Collections configured
// for single-threaded use hand these out so callers keep the same shape.
func None() *Guard {
	return &Guard{released: true}
}

// Write reports whether the guard currently grants write access.
func (guard *Guard) Write() bool {
	return guard != nil && !guard.released && guard.write
}

// Held reports whether the guard still holds any access.
func (guard *Guard) Held() bool {
	return guard != nil && !guard.released && guard.lock != nil
}

// Release returns the access to the lock, restoring the level held before
// Hold for nested guards. Safe to call more than once.
func (guard *Guard) Release() {
	if guard == nil || guard.released {
		return
	}
	guard.released = true
	if guard.lock == nil {
		return
	}
	if guard.upgraded {
		guard.lock.downgrade()
		return
	}
	if guard.write {
		guard.lock.unlock()
	} else {
		guard.lock.runlock()
	}
}

// Hold acquires nested access through an already-held guard. When the held
// level is sufficient (any level under write, read under read) the result
// is an inert guard and the acquisition is free; inert guards grant
// further inert guards. Requesting write under a read guard attempts an
// upgrade, which succeeds only when this is the sole reader; on contention
// Hold returns ErrConflict and the original read remains held. Releasing
// an upgraded guard downgrades back to read.
func (guard *Guard) Hold(write bool) (*Guard, error) {
	if guard != nil && guard.lock == nil {
		// inert guard: there is no lock to escalate on
		return None(), nil
	}
	if !guard.Held() {
		return nil, ErrConflict
	}
	if guard.write || !write {
		return None(), nil
	}
	if err := guard.lock.upgrade(); err != nil {
		return nil, err
	}
	return &Guard{lock: guard.lock, write: true, upgraded: true}, nil
}
