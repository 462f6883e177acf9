package click

// Transaction actions as sent by the gateway in the action field.
const (
	ActionPrepare  = 0
	ActionComplete = 1
)

// Request is the flat field set Click posts to the merchant endpoint (both
// form-encoded and JSON bodies occur in practice). merchant_trans_id carries
// the plan id and param2 the buyer's user id; amount is kept as the raw wire
// string because it participates in the signature.
type Request struct {
	ClickTransID      int64  `json:"click_trans_id" form:"click_trans_id"`
	ServiceID         int64  `json:"service_id" form:"service_id"`
	ClickPaydocID     int64  `json:"click_paydoc_id" form:"click_paydoc_id"`
	MerchantTransID   string `json:"merchant_trans_id" form:"merchant_trans_id"`
	MerchantPrepareID int64  `json:"merchant_prepare_id" form:"merchant_prepare_id"`
	Param2            string `json:"param2" form:"param2"`
	Amount            string `json:"amount" form:"amount"`
	Action            int    `json:"action" form:"action"`
	Error             int    `json:"error" form:"error"`
	ErrorNote         string `json:"error_note" form:"error_note"`
	SignTime          string `json:"sign_time" form:"sign_time"`
	SignString        string `json:"sign_string" form:"sign_string"`
}

// Response is returned with HTTP 200 in every case; Click only inspects the
// body.
type Response struct {
	ClickTransID      int64  `json:"click_trans_id,omitempty"`
	MerchantTransID   string `json:"merchant_trans_id,omitempty"`
	MerchantPrepareID int64  `json:"merchant_prepare_id,omitempty"`
	MerchantConfirmID int64  `json:"merchant_confirm_id,omitempty"`
	Error             int    `json:"error"`
	ErrorNote         string `json:"error_note"`
}
