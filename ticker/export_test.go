// SPDX-License-Identifier: MIT
package ticker

// NearOverflowForTest moves the global counter forward so that the next
// two clicks cross the epoch carry. The clock never moves backwards.
func NearOverflowForTest() {
	globalMu.Lock()
	global.counter = ^uint64(0) - 1
	globalMu.Unlock()
}
