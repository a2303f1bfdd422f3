// Package kernel provides core domain primitives shared by the ground-handling model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Point: A routable apron waypoint (garage, terminals, taxiway nodes, parked aircraft)
//   - Route: An immutable ordered sequence of points returned by the dispatcher
//
// Value objects are immutable and must be created through their constructors;
// zero values fail validation.
package kernel
