// Package order implements the refill order aggregate and its status rollup.
//
// The package includes:
//   - Order: the aggregate root owning the cylinder memberships of one drop-off
//   - CylinderRef: a membership carrying a mirrored copy of the cylinder state
//   - Status: the Open -> ReadyForPickup -> Completed state machine
//
// Key business rules:
//   - Cylinders are attached only while the order is Open, at most once each
//   - CheckAndUpdateStatus is the only way an order becomes ReadyForPickup;
//     it refreshes the mirrors first and requires at least one member, all Ready
//   - Complete re-verifies that every member is Delivered
//   - Mutating methods return domain events instead of recording them
package order
