// Package ports defines the contracts between the refill core and its
// adapters: repositories bound to a unit of work, the print job dispatcher
// and the domain event publisher.
package ports
