// Package http exposes the service over HTTP with echo.
//
// Routes:
//   - /api/v1/orders: submit, list, remove and retry dispatch orders
//   - /api/v1/dead-letters and /api/v1/vehicles: read-only views
//   - /transportation-pass and /transportation-bagg: per-flight accumulators
//   - /health and /metrics
//
// Errors are answered as {"code": ..., "message": ...}.
package http
