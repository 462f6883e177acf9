package payme

// Method is the JSON-RPC method discriminator. Dispatch is an explicit
// switch; unknown methods get a structured error, never a transport failure.
type Method string

const (
	MethodCheckPerformTransaction Method = "CheckPerformTransaction"
	MethodCreateTransaction       Method = "CreateTransaction"
	MethodPerformTransaction      Method = "PerformTransaction"
	MethodCancelTransaction       Method = "CancelTransaction"
	MethodCheckTransaction        Method = "CheckTransaction"
	MethodGetStatement            Method = "GetStatement"
)

// Request is the JSON-RPC envelope Payme posts to the single merchant
// endpoint.
type Request struct {
	ID     int64  `json:"id"`
	Method Method `json:"method"`
	Params Params `json:"params"`
}

// Params covers the union of all method parameter shapes; each handler reads
// only its own fields.
type Params struct {
	ID      string   `json:"id,omitempty"`
	Time    int64    `json:"time,omitempty"`
	Amount  int64    `json:"amount,omitempty"`
	Account *Account `json:"account,omitempty"`
	Reason  *int     `json:"reason,omitempty"`
	From    int64    `json:"from,omitempty"`
	To      int64    `json:"to,omitempty"`
}

// Account identifies what is being bought and by whom. Both ids travel as
// strings on the wire.
type Account struct {
	PlanID string `json:"planId"`
	UserID string `json:"user_id"`
}

// Response always carries HTTP 200; exactly one of Result and Error is set.
type Response struct {
	ID     int64       `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  *Error      `json:"error,omitempty"`
}

// Message holds the trilingual error text Payme requires.
type Message struct {
	UZ string `json:"uz"`
	RU string `json:"ru"`
	EN string `json:"en"`
}

// Error is the structured rejection body. State and Reason are attached when
// a rejection also reports a cancellation (e.g. timeout during perform).
type Error struct {
	Code    int     `json:"code"`
	Message Message `json:"message"`
	Data    string  `json:"data,omitempty"`
	State   int     `json:"state,omitempty"`
	Reason  *int    `json:"reason,omitempty"`
}

type CheckPerformResult struct {
	Allow bool `json:"allow"`
}

type CreateResult struct {
	Transaction string `json:"transaction"`
	State       int    `json:"state"`
	CreateTime  int64  `json:"create_time"`
}

type PerformResult struct {
	Transaction string `json:"transaction"`
	State       int    `json:"state"`
	PerformTime int64  `json:"perform_time"`
}

type CancelResult struct {
	Transaction string `json:"transaction"`
	State       int    `json:"state"`
	CancelTime  int64  `json:"cancel_time"`
}

type CheckResult struct {
	CreateTime  int64  `json:"create_time"`
	PerformTime int64  `json:"perform_time"`
	CancelTime  int64  `json:"cancel_time"`
	Transaction string `json:"transaction"`
	State       int    `json:"state"`
	Reason      *int   `json:"reason"`
}

type StatementResult struct {
	Transactions []StatementEntry `json:"transactions"`
}

type StatementEntry struct {
	ID          string  `json:"id"`
	Time        int64   `json:"time"`
	Amount      int64   `json:"amount"`
	Account     Account `json:"account"`
	CreateTime  int64   `json:"create_time"`
	PerformTime int64   `json:"perform_time"`
	CancelTime  int64   `json:"cancel_time"`
	Transaction string  `json:"transaction"`
	State       int     `json:"state"`
	Reason      *int    `json:"reason"`
}
