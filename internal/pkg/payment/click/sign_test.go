package click

import "testing"

func TestSignOrdering(t *testing.T) {
	prepare := &Request{
		ClickTransID:    1001,
		ServiceID:       7,
		MerchantTransID: "3",
		Amount:          "50000",
		Action:          ActionPrepare,
		SignTime:        "2026-01-10 12:00:00",
	}
	if got, want := signPayload(prepare, "secret"), "10017secret35000002026-01-10 12:00:00"; got != want {
		t.Fatalf("prepare payload = %q, want %q", got, want)
	}

	complete := &Request{
		ClickTransID:      1001,
		ServiceID:         7,
		MerchantTransID:   "3",
		MerchantPrepareID: 555,
		Amount:            "50000",
		Action:            ActionComplete,
		SignTime:          "2026-01-10 12:05:00",
	}
	if got, want := signPayload(complete, "secret"), "10017secret35555000012026-01-10 12:05:00"; got != want {
		t.Fatalf("complete payload = %q, want %q", got, want)
	}
}

func TestVerifySignature(t *testing.T) {
	req := &Request{
		ClickTransID:    42,
		ServiceID:       7,
		MerchantTransID: "3",
		Param2:          "9",
		Amount:          "1000",
		Action:          ActionPrepare,
		SignTime:        "2026-01-10 12:00:00",
	}
	req.SignString = Sign(req, "secret")

	if !verifySignature(req, "secret") {
		t.Fatal("valid signature rejected")
	}
	if verifySignature(req, "other") {
		t.Fatal("signature accepted with wrong secret")
	}

	req.Amount = "2000"
	if verifySignature(req, "secret") {
		t.Fatal("signature accepted after payload tamper")
	}

	req.SignString = ""
	if verifySignature(req, "secret") {
		t.Fatal("empty sign_string accepted")
	}
}
