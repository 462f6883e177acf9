package click

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// signPayload builds the ordered concatenation Click signs. The complete
// phase additionally includes merchant_prepare_id between merchant_trans_id
// and amount.
func signPayload(req *Request, secret string) string {
	if req.Action == ActionComplete {
		return fmt.Sprintf("%d%d%s%s%d%s%d%s",
			req.ClickTransID, req.ServiceID, secret, req.MerchantTransID,
			req.MerchantPrepareID, req.Amount, req.Action, req.SignTime)
	}
	return fmt.Sprintf("%d%d%s%s%s%d%s",
		req.ClickTransID, req.ServiceID, secret, req.MerchantTransID,
		req.Amount, req.Action, req.SignTime)
}

// Sign computes the md5 hex digest Click expects in sign_string.
func Sign(req *Request, secret string) string {
	sum := md5.Sum([]byte(signPayload(req, secret)))
	return hex.EncodeToString(sum[:])
}

// verifySignature compares the caller-supplied sign_string against the
// recomputed digest. Pure predicate; no ledger access happens before it.
func verifySignature(req *Request, secret string) bool {
	if req.SignString == "" || secret == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(req, secret)), []byte(req.SignString))
}
