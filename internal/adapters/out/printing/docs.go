// Package printing implements ports.PrintJobDispatcher.
//
// Two dispatchers are available:
//
//  1. Hub - fans dispatched jobs out to connected print gateways (the HTTP
//     adapter streams them as server-sent events). Delivery is best effort:
//     a gateway whose buffer is full misses the job, and nobody retries.
//  2. SimulatedDispatcher - logs the job and acknowledges it as printed right
//     away, for shops without a gateway.
//
// Both count their outcomes in refill_print_dispatch_total.
package printing
