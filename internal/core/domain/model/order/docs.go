// Package order provides the Order aggregate and its status state
// machine. The aggregate enforces mode invariants (address, sector and
// driver binding exist only on delivery orders) and the monotonic
// transition rules with the cancellation escape hatch.
package order
