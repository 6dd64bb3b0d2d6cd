// Package kernel provides the shared domain primitives of the refill system.
//
// The package includes:
//   - UUID: identifier for every aggregate and entity
//   - PhoneNumber: a customer phone normalized to its digits
//   - LabelToken: the trimmed, upper-cased token printed on a cylinder's QR tag
//   - DomainEvent: the notification contract returned by aggregate operations
//
// Value objects are immutable and carry a guard.ConstructorGuard, so a zero
// value fails Validate.
package kernel
