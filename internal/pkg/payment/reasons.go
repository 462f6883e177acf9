package payment

// Cancellation reason codes stored in the ledger's reason column. The
// numbering follows the Payme cancellation vocabulary since that provider
// echoes the code back to the gateway; the other adapters reuse the same
// column for their own cause codes.
const (
	ReasonReceiverInactive = 1
	ReasonProcessingError  = 2
	ReasonExecutionError   = 3
	ReasonTimeout          = 4
	ReasonRefund           = 5
	ReasonUnknown          = 10
)
