package click

// Error codes from the Click merchant API documentation.
const (
	CodeSuccess             = 0
	CodeSignCheckFailed     = -1
	CodeInvalidAmount       = -2
	CodeActionNotFound      = -3
	CodeAlreadyPaid         = -4
	CodeUserNotFound        = -5
	CodeTransactionNotFound = -6
	CodeBadRequest          = -8
	CodeTransactionCanceled = -9
)

func errResponse(code int, note string) *Response {
	return &Response{Error: code, ErrorNote: note}
}
