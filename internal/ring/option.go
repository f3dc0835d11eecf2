// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package ring

// Option configures a Ring at Load time.
type Option interface {
	// InitialCapacity is the starting array length. Raised to MinCapacity
	// when smaller.
	InitialCapacity() int
	// MinCapacity is the floor below which shrink never goes.
	MinCapacity() int
	// MaxCapacity is the bound triggering eviction (or rejection).
	// 0 means unbounded.
	MaxCapacity() int
	// GrowthFactor scales each capacity increase; 0 grows exactly to fit.
	GrowthFactor() float64
	// MinOccupancy is the size/capacity fraction below which the array
	// shrinks after a removal; 0 disables auto-shrink.
	MinOccupancy() float64
}

// RejectWhenFull narrows Option: a full bounded ring configured this way
// fails inserts with ErrUnsupported instead of evicting from the head.
type RejectWhenFull interface {
	RejectWhenFull() bool
}

func rejecting(opt any) bool {
	if o, ok := opt.(RejectWhenFull); ok {
		return o.RejectWhenFull()
	}
	return false
}

type testOption struct {
	initialCapacity int
	minCapacity     int
	maxCapacity     int
	growthFactor    float64
	minOccupancy    float64
	rejectWhenFull  bool
}

func (o testOption) InitialCapacity() int  { return o.initialCapacity }
func (o testOption) MinCapacity() int      { return o.minCapacity }
func (o testOption) MaxCapacity() int      { return o.maxCapacity }
func (o testOption) GrowthFactor() float64 { return o.growthFactor }
func (o testOption) MinOccupancy() float64 { return o.minOccupancy }
func (o testOption) RejectWhenFull() bool  { return o.rejectWhenFull }
