package click

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/entitlements"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment/paymenttest"
)

const testSecret = "test-secret"

type clickFixture struct {
	svc    *Service
	ledger *paymenttest.Ledger
	user   *models.User
	plan   *models.Plan
	now    time.Time
}

func newFixture(t *testing.T) *clickFixture {
	t.Helper()
	ledger := paymenttest.NewLedger()
	user := ledger.AddUser(&models.User{Name: "Aziz", Email: "aziz@example.com"})
	plan := ledger.AddPlan(&models.Plan{
		CourseID:        1,
		Package:         models.PlanPackageStandard,
		Price:           50000,
		AvailablePeriod: 30,
	})

	f := &clickFixture{
		ledger: ledger,
		user:   user,
		plan:   plan,
		now:    time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(payment.ClickConfig{
		ServiceID:      7,
		SecretKey:      testSecret,
		ValidityWindow: 12 * time.Hour,
	}, ledger, entitlements.NewGranter(ledger, nil))
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *clickFixture) request(action int, clickTransID int64) *Request {
	req := &Request{
		ClickTransID:    clickTransID,
		ServiceID:       7,
		MerchantTransID: strconv.FormatUint(uint64(f.plan.ID), 10),
		Param2:          strconv.FormatUint(uint64(f.user.ID), 10),
		Amount:          "50000",
		Action:          action,
		SignTime:        f.now.Format("2006-01-02 15:04:05"),
	}
	req.SignString = Sign(req, testSecret)
	return req
}

// prepare runs a successful prepare and returns the assigned prepare id.
func (f *clickFixture) prepare(t *testing.T, clickTransID int64) int64 {
	t.Helper()
	resp, err := f.svc.HandleRequest(context.Background(), f.request(ActionPrepare, clickTransID))
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if resp.Error != CodeSuccess {
		t.Fatalf("prepare error = %d (%s), want success", resp.Error, resp.ErrorNote)
	}
	return resp.MerchantPrepareID
}

func TestPrepareSuccess(t *testing.T) {
	f := newFixture(t)

	prepareID := f.prepare(t, 1001)
	if prepareID == 0 {
		t.Fatal("merchant_prepare_id not assigned")
	}

	trans, err := f.ledger.FindByTransID(models.ProviderClick, "1001")
	if err != nil {
		t.Fatalf("transaction not stored: %v", err)
	}
	if trans.Status != models.TransactionStatusPending {
		t.Fatalf("status = %q, want PENDING", trans.Status)
	}
	if trans.Amount != 50000 {
		t.Fatalf("amount = %d, want 50000", trans.Amount)
	}
}

func TestPrepareRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *clickFixture, req *Request)
		want   int
	}{
		{
			name: "tampered signature",
			mutate: func(f *clickFixture, req *Request) {
				req.Amount = "1"
			},
			want: CodeSignCheckFailed,
		},
		{
			name: "unknown user",
			mutate: func(f *clickFixture, req *Request) {
				req.Param2 = "9999"
				req.SignString = Sign(req, testSecret)
			},
			want: CodeUserNotFound,
		},
		{
			name: "unknown plan",
			mutate: func(f *clickFixture, req *Request) {
				req.MerchantTransID = "9999"
				req.SignString = Sign(req, testSecret)
			},
			want: CodeBadRequest,
		},
		{
			name: "wrong amount",
			mutate: func(f *clickFixture, req *Request) {
				req.Amount = "49000"
				req.SignString = Sign(req, testSecret)
			},
			want: CodeInvalidAmount,
		},
		{
			name: "fractional amount",
			mutate: func(f *clickFixture, req *Request) {
				req.Amount = "50000.50"
				req.SignString = Sign(req, testSecret)
			},
			want: CodeInvalidAmount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request(ActionPrepare, 1001)
			tt.mutate(f, req)
			resp, err := f.svc.HandleRequest(context.Background(), req)
			if err != nil {
				t.Fatalf("HandleRequest: %v", err)
			}
			if resp.Error != tt.want {
				t.Fatalf("error = %d, want %d", resp.Error, tt.want)
			}
		})
	}
}

func TestPrepareReplayKeepsPrepareID(t *testing.T) {
	f := newFixture(t)

	first := f.prepare(t, 1001)
	second := f.prepare(t, 1001)
	if first != second {
		t.Fatalf("replayed prepare id = %d, want %d", second, first)
	}
	if len(f.ledger.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(f.ledger.Transactions))
	}
}

func TestPrepareDiscountedAmount(t *testing.T) {
	f := newFixture(t)
	expires := f.now.Add(24 * time.Hour)
	f.plan.Discount = 40000
	f.plan.DiscountExpiredAt = &expires
	f.ledger.AddPlan(f.plan)

	req := f.request(ActionPrepare, 1001)
	req.Amount = "40000"
	req.SignString = Sign(req, testSecret)
	resp, err := f.svc.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleRequest: %v", err)
	}
	if resp.Error != CodeSuccess {
		t.Fatalf("error = %d, want success at discounted price", resp.Error)
	}

	// The full price is no longer the effective one.
	resp, err = f.svc.HandleRequest(context.Background(), f.request(ActionPrepare, 1002))
	if err != nil {
		t.Fatalf("HandleRequest: %v", err)
	}
	if resp.Error != CodeInvalidAmount {
		t.Fatalf("error = %d, want %d for full price during discount", resp.Error, CodeInvalidAmount)
	}
}

func TestCompleteSuccess(t *testing.T) {
	f := newFixture(t)
	prepareID := f.prepare(t, 1001)

	req := f.request(ActionComplete, 1001)
	req.MerchantPrepareID = prepareID
	req.SignString = Sign(req, testSecret)

	resp, err := f.svc.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Error != CodeSuccess {
		t.Fatalf("error = %d (%s), want success", resp.Error, resp.ErrorNote)
	}
	if resp.MerchantConfirmID == 0 {
		t.Fatal("merchant_confirm_id not assigned")
	}

	trans, err := f.ledger.FindByTransID(models.ProviderClick, "1001")
	if err != nil {
		t.Fatalf("transaction lookup: %v", err)
	}
	if trans.Status != models.TransactionStatusPaid {
		t.Fatalf("status = %q, want PAID", trans.Status)
	}
	if _, err := f.ledger.FindEntitlement(f.user.ID, f.plan.ID); err != nil {
		t.Fatalf("entitlement not granted: %v", err)
	}
}

func TestCompleteReplay(t *testing.T) {
	f := newFixture(t)
	prepareID := f.prepare(t, 1001)

	req := f.request(ActionComplete, 1001)
	req.MerchantPrepareID = prepareID
	req.SignString = Sign(req, testSecret)

	first, err := f.svc.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	second, err := f.svc.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("replayed complete: %v", err)
	}
	if second.Error != CodeSuccess {
		t.Fatalf("replay error = %d, want success", second.Error)
	}
	if second.MerchantConfirmID != first.MerchantConfirmID {
		t.Fatalf("replay confirm id = %d, want %d", second.MerchantConfirmID, first.MerchantConfirmID)
	}
	if len(f.ledger.Entitlements) != 1 {
		t.Fatalf("entitlements = %d, want 1", len(f.ledger.Entitlements))
	}
}

func TestCompleteUnknownPrepareID(t *testing.T) {
	f := newFixture(t)
	f.prepare(t, 1001)

	req := f.request(ActionComplete, 1001)
	req.MerchantPrepareID = 424242
	req.SignString = Sign(req, testSecret)

	resp, err := f.svc.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Error != CodeTransactionNotFound {
		t.Fatalf("error = %d, want %d", resp.Error, CodeTransactionNotFound)
	}
}

func TestCompleteGatewayFailure(t *testing.T) {
	f := newFixture(t)
	prepareID := f.prepare(t, 1001)

	req := f.request(ActionComplete, 1001)
	req.MerchantPrepareID = prepareID
	req.Error = -5017
	req.SignString = Sign(req, testSecret)

	resp, err := f.svc.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Error != -5017 {
		t.Fatalf("error = %d, want echoed -5017", resp.Error)
	}

	trans, err := f.ledger.FindByTransID(models.ProviderClick, "1001")
	if err != nil {
		t.Fatalf("transaction lookup: %v", err)
	}
	if trans.Status != models.TransactionStatusCanceled {
		t.Fatalf("status = %q, want CANCELED", trans.Status)
	}
	if len(f.ledger.Entitlements) != 0 {
		t.Fatal("entitlement granted for failed payment")
	}
}

func TestCompleteExpired(t *testing.T) {
	f := newFixture(t)
	prepareID := f.prepare(t, 1001)

	f.now = f.now.Add(13 * time.Hour)
	req := f.request(ActionComplete, 1001)
	req.MerchantPrepareID = prepareID
	req.SignString = Sign(req, testSecret)

	resp, err := f.svc.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Error != CodeTransactionCanceled {
		t.Fatalf("error = %d, want %d", resp.Error, CodeTransactionCanceled)
	}

	trans, err := f.ledger.FindByTransID(models.ProviderClick, "1001")
	if err != nil {
		t.Fatalf("transaction lookup: %v", err)
	}
	if trans.Status != models.TransactionStatusCanceled {
		t.Fatalf("status = %q, want CANCELED", trans.Status)
	}
	if trans.Reason == nil || *trans.Reason != payment.ReasonTimeout {
		t.Fatalf("reason = %v, want %d", trans.Reason, payment.ReasonTimeout)
	}
}

func TestCompleteAfterCancelRefused(t *testing.T) {
	f := newFixture(t)
	prepareID := f.prepare(t, 1001)

	fail := f.request(ActionComplete, 1001)
	fail.MerchantPrepareID = prepareID
	fail.Error = -5017
	fail.SignString = Sign(fail, testSecret)
	if _, err := f.svc.HandleRequest(context.Background(), fail); err != nil {
		t.Fatalf("failing complete: %v", err)
	}

	retry := f.request(ActionComplete, 1001)
	retry.MerchantPrepareID = prepareID
	retry.SignString = Sign(retry, testSecret)
	resp, err := f.svc.HandleRequest(context.Background(), retry)
	if err != nil {
		t.Fatalf("retried complete: %v", err)
	}
	if resp.Error != CodeTransactionCanceled {
		t.Fatalf("error = %d, want %d", resp.Error, CodeTransactionCanceled)
	}
}

func TestUnknownAction(t *testing.T) {
	f := newFixture(t)
	req := f.request(5, 1001)
	req.SignString = Sign(req, testSecret)
	resp, err := f.svc.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleRequest: %v", err)
	}
	if resp.Error != CodeActionNotFound {
		t.Fatalf("error = %d, want %d", resp.Error, CodeActionNotFound)
	}
}
