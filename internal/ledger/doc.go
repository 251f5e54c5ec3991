// Package ledger tracks which items have already produced a notification.
//
// The ledger is a bounded FIFO set of composite keys ("ItemType:Name:Year")
// backed by a single flat JSON object file. It is loaded once at startup,
// held in memory, and flushed to disk after every mark. Insertion order is
// preserved on disk so the oldest entry is the one evicted when the bound
// is exceeded.
package ledger
