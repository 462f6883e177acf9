package payment

import "errors"

// ErrNotFound is what every Ledger lookup returns when no row matches.
// Adapters branch on it to build their provider's not-found envelope; any
// other error is a storage fault and escapes to the HTTP layer.
var ErrNotFound = errors.New("payment: record not found")
