// Package gateway applies the call-level retry policy to the outbound ports.
//
// Garage exit is retried without bound at a fixed interval; it ends only when
// the caller's context does. Route fetches, notifications and reports are tried
// a bounded number of times at a fixed interval, retrying negative answers and
// transport faults alike. Movement permissions retry transport faults only: a
// denial goes straight back to the movement engine, which owns stall counting.
//
// Exhausted negative answers surface as ErrRejected, exhausted transport faults
// as ErrTransport. Callers use errors.Is to tell a permanent step failure from a
// retryable one.
package gateway
