// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package list

import (
	"github.com/dacapoday/ringlist/internal/ring"
)

// Option configures a CircularArrayList at Load time. It is the ring
// engine's capacity policy; the capability interfaces below narrow it.
type Option = ring.Option

// RejectWhenFull narrows Option: a full bounded list configured this way
// fails inserts with ErrUnsupported instead of evicting its oldest
// elements.
type RejectWhenFull = ring.RejectWhenFull

// Unsynchronized narrows Option: the list skips all locking, trading
// thread safety for speed in single-threaded use. Stamps keep counting,
// so stale-id and stale-view detection still works.
type Unsynchronized interface {
	Unsynchronized() bool
}

func unsynchronized(opt any) bool {
	if o, ok := opt.(Unsynchronized); ok {
		return o.Unsynchronized()
	}
	return false
}

// Config is a plain-struct Option for callers that don't want to define
// their own method set. The zero value is a reasonable default: empty
// unbounded list, grow exactly to fit, no auto-shrink, fully locked.
type Config struct {
	Initial   int     // initial capacity
	Min       int     // capacity floor
	Max       int     // capacity bound, 0 = unbounded
	Growth    float64 // growth factor, 0 = grow exactly to fit
	Occupancy float64 // min occupancy fraction, 0 = no auto-shrink
	Reject    bool    // bounded mode rejects instead of evicting
	Single    bool    // unsynchronized single-threaded mode
}

func (c Config) InitialCapacity() int  { return c.Initial }
func (c Config) MinCapacity() int      { return c.Min }
func (c Config) MaxCapacity() int      { return c.Max }
func (c Config) GrowthFactor() float64 { return c.Growth }
func (c Config) MinOccupancy() float64 { return c.Occupancy }
func (c Config) RejectWhenFull() bool  { return c.Reject }
func (c Config) Unsynchronized() bool  { return c.Single }
