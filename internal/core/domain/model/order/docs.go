// Package order provides the Order aggregate: one dispatch request from the
// dispatch authority, served by exactly one saga execution at a time.
//
// The package includes:
//   - Order: identity, target flight, passengers, saga kind, retry budget bookkeeping
//   - Kind: which saga template (load or discharge) serves the order
//   - Status: Active -> Completed | DeadLettered, with manual reactivation
//
// Key business rules:
//   - Order IDs are caller supplied and must be non-blank
//   - A load order must carry at least one passenger
//   - Attempts only grow while the order is Active; reactivation resets them
package order
