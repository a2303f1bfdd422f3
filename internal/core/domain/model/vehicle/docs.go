// Package vehicle provides the ground-handling fleet: vehicles (buses, baggage
// carts) and the Pool that hands them out to sagas.
//
// The package includes:
//   - Vehicle: an entity with identity, kind and an atomic busy flag
//   - Kind: bus or baggage cart
//   - Pool: atomic acquire / try-acquire / release over a fixed fleet
//
// Key business rules:
//   - A vehicle is busy for at most one saga at a time
//   - The number of busy vehicles never exceeds the fleet size
//   - Waiting for a vehicle never drops the request; it ends only when a vehicle
//     frees up or the caller's context is done
package vehicle
