// Package cylinder models the gas cylinder aggregate and its lifecycle.
//
// A cylinder is registered in Received with a sequential number, becomes Ready
// once filled and Delivered when handed back. Problem can be entered from any
// state. Label tokens may be assigned at any time; assigning the same token
// twice is a no-op.
//
// Mutating methods return the domain events they produce instead of storing
// them on the aggregate.
package cylinder
