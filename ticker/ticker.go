// SPDX-License-Identifier: MIT
// Package ticker provides a process-wide logical clock used to decide
// whether cached results are still valid.
//
// A Ticker is an (epoch, counter) pair. Click advances a single global
// counter and copies it into the receiver, so every click anywhere in the
// process yields a value strictly greater than all earlier clicks. Owners
// of dependent state compare tickers to find out which side changed last.
//
// Usage:
//
//	var cfg ticker.Ticker
//	cfg.Click()              // configuration changed
//	stamp := cfg             // remember when a value was computed
//	...
//	if !stamp.After(cfg) {   // configuration changed after the value
//		recompute()
//	}
package ticker

import (
	"cmp"
	"fmt"
	"sync"
)

// Ticker is a value-type logical timestamp. The zero Ticker is older than
// any clicked one.
type Ticker struct {
	epoch   uint64
	counter uint64
}

var (
	globalMu sync.Mutex
	global   Ticker
)

// Click advances the global clock and stores the new value in t.
// The counter carries into the epoch on overflow.
func (t *Ticker) Click() {
	globalMu.Lock()
	global.counter++
	if global.counter == 0 {
		global.epoch++
	}
	*t = global
	globalMu.Unlock()
}

// UpdateFrom raises t to other when other is newer.
func (t *Ticker) UpdateFrom(other Ticker) {
	if t.Before(other) {
		*t = other
	}
}

// Value returns the (epoch, counter) pair.
func (t Ticker) Value() (epoch, counter uint64) {
	return t.epoch, t.counter
}

// Compare orders tickers lexicographically by (epoch, counter).
// It returns -1, 0 or +1.
func (t Ticker) Compare(other Ticker) int {
	if c := cmp.Compare(t.epoch, other.epoch); c != 0 {
		return c
	}
	return cmp.Compare(t.counter, other.counter)
}

// Before reports whether t is strictly older than other.
func (t Ticker) Before(other Ticker) bool { return t.Compare(other) < 0 }

// After reports whether t is strictly newer than other.
func (t Ticker) After(other Ticker) bool { return t.Compare(other) > 0 }

// IsZero reports whether t was never clicked nor updated.
func (t Ticker) IsZero() bool { return t == Ticker{} }

// String implements fmt.Stringer.
func (t Ticker) String() string {
	return fmt.Sprintf("%d:%d", t.epoch, t.counter)
}

// Max returns the newest of the given tickers, or the zero Ticker.
func Max(ts ...Ticker) Ticker {
	var out Ticker
	for _, t := range ts {
		out.UpdateFrom(t)
	}
	return out
}
