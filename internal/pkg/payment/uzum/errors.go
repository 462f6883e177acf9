package uzum

// Error codes from the Uzum merchant API protocol.
const (
	CodeInvalidPaymentData = 10005
	CodeInvalidServiceID   = 10006
	CodeNotFound           = 10007
	CodeAlreadyProcessed   = 10008
)
