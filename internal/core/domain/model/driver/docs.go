// Package driver provides the delivery agent session aggregate: the
// per-business-day claim on a color slot, its liveness rules and its
// release semantics.
package driver
