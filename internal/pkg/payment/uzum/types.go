package uzum

// Request is the JSON body Uzum posts to every merchant endpoint; each phase
// fills the subset it needs.
type Request struct {
	ServiceID int64          `json:"serviceId"`
	Timestamp int64          `json:"timestamp"`
	TransID   string         `json:"transId,omitempty"`
	Amount    int64          `json:"amount,omitempty"`
	Params    *RequestParams `json:"params,omitempty"`
}

// RequestParams carries the purchase account. Both ids are strings on the
// wire.
type RequestParams struct {
	UserID string `json:"userId"`
	PlanID string `json:"planId"`
}

// Phase outcome statuses. OK/FAILED answer check; the lifecycle statuses
// answer the other phases and the status poll.
const (
	StatusOK        = "OK"
	StatusFailed    = "FAILED"
	StatusCreated   = "CREATED"
	StatusConfirmed = "CONFIRMED"
	StatusReversed  = "REVERSED"
)

// Response is the common envelope. Always HTTP 200; FAILED plus ErrorCode is
// how a phase is refused.
type Response struct {
	ServiceID   int64         `json:"serviceId"`
	Timestamp   int64         `json:"timestamp"`
	Status      string        `json:"status"`
	TransID     string        `json:"transId,omitempty"`
	TransTime   int64         `json:"transTime,omitempty"`
	ConfirmTime int64         `json:"confirmTime,omitempty"`
	ReverseTime int64         `json:"reverseTime,omitempty"`
	Amount      int64         `json:"amount,omitempty"`
	ErrorCode   int           `json:"errorCode,omitempty"`
	Data        *ResponseData `json:"data,omitempty"`
}

// ResponseData echoes the validated account back on a successful check.
type ResponseData struct {
	Account *RequestParams `json:"account,omitempty"`
}
