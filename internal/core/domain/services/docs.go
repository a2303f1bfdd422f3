// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the ground-handling system.
//
// The package includes:
//   - VehicleDispatcher: A domain service that claims fleet vehicles for orders
package services
