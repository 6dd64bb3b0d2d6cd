// Package history holds the append-only cylinder history ledger entries.
package history
