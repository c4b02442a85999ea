// Package kernel provides core domain primitives shared across the order and
// notification models.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//
// These primitives are immutable and thread-safe, and enforce that identifiers
// entering the domain model were constructed through a validating factory.
package kernel
