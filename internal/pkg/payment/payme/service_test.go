package payme

import (
	"context"
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/entitlements"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment/paymenttest"
)

type paymeFixture struct {
	svc    *Service
	ledger *paymenttest.Ledger
	user   *models.User
	plan   *models.Plan
	now    time.Time
}

func newFixture(t *testing.T) *paymeFixture {
	t.Helper()
	ledger := paymenttest.NewLedger()
	user := ledger.AddUser(&models.User{Name: "Dilnoza", Phone: "998901234567"})
	plan := ledger.AddPlan(&models.Plan{
		CourseID:        1,
		Package:         models.PlanPackagePremium,
		Price:           120000,
		AvailablePeriod: 30,
	})

	f := &paymeFixture{
		ledger: ledger,
		user:   user,
		plan:   plan,
		now:    time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(payment.PaymeConfig{
		Login:          "Paycom",
		Password:       "merchant-key",
		ValidityWindow: 12 * time.Hour,
	}, ledger, entitlements.NewGranter(ledger, nil))
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *paymeFixture) account() *Account {
	return &Account{
		PlanID: strconv.FormatUint(uint64(f.plan.ID), 10),
		UserID: strconv.FormatUint(uint64(f.user.ID), 10),
	}
}

func (f *paymeFixture) amountTiyin() int64 {
	return f.plan.EffectivePrice(f.now) * payment.TiyinPerSum
}

func (f *paymeFixture) call(t *testing.T, method Method, params Params) *Response {
	t.Helper()
	resp, err := f.svc.HandleRequest(context.Background(), &Request{ID: 1, Method: method, Params: params})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func (f *paymeFixture) create(t *testing.T, transID string) *CreateResult {
	t.Helper()
	resp := f.call(t, MethodCreateTransaction, Params{
		ID:      transID,
		Time:    f.now.UnixMilli(),
		Amount:  f.amountTiyin(),
		Account: f.account(),
	})
	require.Nil(t, resp.Error, "create rejected: %+v", resp.Error)
	return resp.Result.(*CreateResult)
}

func TestVerifyBasicAuth(t *testing.T) {
	f := newFixture(t)

	header := "Basic " + base64.StdEncoding.EncodeToString([]byte("Paycom:merchant-key"))
	assert.True(t, f.svc.VerifyBasicAuth(header))

	bad := "Basic " + base64.StdEncoding.EncodeToString([]byte("Paycom:wrong"))
	assert.False(t, f.svc.VerifyBasicAuth(bad))
	assert.False(t, f.svc.VerifyBasicAuth(""))
	assert.False(t, f.svc.VerifyBasicAuth("Bearer abc"))

	resp := UnauthorizedResponse(7)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeUnauthorized, resp.Error.Code)
}

func TestCheckPerformTransaction(t *testing.T) {
	f := newFixture(t)

	resp := f.call(t, MethodCheckPerformTransaction, Params{
		Amount:  f.amountTiyin(),
		Account: f.account(),
	})
	require.Nil(t, resp.Error)
	assert.True(t, resp.Result.(*CheckPerformResult).Allow)
}

func TestCheckPerformRejections(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		params Params
		code   int
	}{
		{
			name:   "wrong amount",
			params: Params{Amount: f.amountTiyin() + 100, Account: f.account()},
			code:   CodeInvalidAmount,
		},
		{
			name:   "amount in sum instead of tiyin",
			params: Params{Amount: f.plan.Price, Account: f.account()},
			code:   CodeInvalidAmount,
		},
		{
			name:   "unknown user",
			params: Params{Amount: f.amountTiyin(), Account: &Account{PlanID: "1", UserID: "9999"}},
			code:   CodeUserNotFound,
		},
		{
			name:   "unknown plan",
			params: Params{Amount: f.amountTiyin(), Account: &Account{PlanID: "9999", UserID: strconv.FormatUint(uint64(f.user.ID), 10)}},
			code:   CodeProductNotFound,
		},
		{
			name:   "missing account",
			params: Params{Amount: f.amountTiyin()},
			code:   CodeUserNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.call(t, MethodCheckPerformTransaction, tt.params)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestCreateTransaction(t *testing.T) {
	f := newFixture(t)

	result := f.create(t, "pm-1")
	assert.Equal(t, models.TransactionStatePending, result.State)
	assert.Equal(t, f.now.UnixMilli(), result.CreateTime)
	assert.NotEmpty(t, result.Transaction)

	replay := f.create(t, "pm-1")
	assert.Equal(t, result.Transaction, replay.Transaction)
	assert.Equal(t, result.CreateTime, replay.CreateTime)
	assert.Len(t, f.ledger.Transactions, 1)
}

func TestCreateSecondTransactionForSamePurchase(t *testing.T) {
	f := newFixture(t)
	f.create(t, "pm-1")

	resp := f.call(t, MethodCreateTransaction, Params{
		ID:      "pm-2",
		Amount:  f.amountTiyin(),
		Account: f.account(),
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeCantDoOperation, resp.Error.Code)
}

func TestCreateExpiredReplayCancels(t *testing.T) {
	f := newFixture(t)
	f.create(t, "pm-1")

	f.now = f.now.Add(13 * time.Hour)
	resp := f.call(t, MethodCreateTransaction, Params{
		ID:      "pm-1",
		Amount:  f.amountTiyin(),
		Account: f.account(),
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeCantDoOperation, resp.Error.Code)
	assert.Equal(t, models.TransactionStatePendingCanceled, resp.Error.State)
	require.NotNil(t, resp.Error.Reason)
	assert.Equal(t, payment.ReasonTimeout, *resp.Error.Reason)

	trans, err := f.ledger.FindByTransID(models.ProviderPayme, "pm-1")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCanceled, trans.Status)
}

func TestPerformTransaction(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "pm-1")

	f.now = f.now.Add(2 * time.Minute)
	resp := f.call(t, MethodPerformTransaction, Params{ID: "pm-1"})
	require.Nil(t, resp.Error)
	result := resp.Result.(*PerformResult)
	assert.Equal(t, created.Transaction, result.Transaction)
	assert.Equal(t, models.TransactionStatePaid, result.State)
	assert.Equal(t, f.now.UnixMilli(), result.PerformTime)

	_, err := f.ledger.FindEntitlement(f.user.ID, f.plan.ID)
	require.NoError(t, err, "entitlement not granted")

	// Gateway retry must replay, not grant twice.
	replay := f.call(t, MethodPerformTransaction, Params{ID: "pm-1"})
	require.Nil(t, replay.Error)
	assert.Equal(t, result.PerformTime, replay.Result.(*PerformResult).PerformTime)
	assert.Len(t, f.ledger.Entitlements, 1)
}

func TestPerformUnknownTransaction(t *testing.T) {
	f := newFixture(t)
	resp := f.call(t, MethodPerformTransaction, Params{ID: "missing"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeTransactionNotFound, resp.Error.Code)
}

func TestPerformExpired(t *testing.T) {
	f := newFixture(t)
	f.create(t, "pm-1")

	f.now = f.now.Add(13 * time.Hour)
	resp := f.call(t, MethodPerformTransaction, Params{ID: "pm-1"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeCantDoOperation, resp.Error.Code)
	assert.Equal(t, models.TransactionStatePendingCanceled, resp.Error.State)

	trans, err := f.ledger.FindByTransID(models.ProviderPayme, "pm-1")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCanceled, trans.Status)
	require.NotNil(t, trans.Reason)
	assert.Equal(t, payment.ReasonTimeout, *trans.Reason)
	assert.Empty(t, f.ledger.Entitlements)
}

func TestCancelPendingTransaction(t *testing.T) {
	f := newFixture(t)
	f.create(t, "pm-1")

	reason := payment.ReasonProcessingError
	f.now = f.now.Add(time.Minute)
	resp := f.call(t, MethodCancelTransaction, Params{ID: "pm-1", Reason: &reason})
	require.Nil(t, resp.Error)
	result := resp.Result.(*CancelResult)
	assert.Equal(t, models.TransactionStatePendingCanceled, result.State)
	assert.Equal(t, f.now.UnixMilli(), result.CancelTime)

	trans, err := f.ledger.FindByTransID(models.ProviderPayme, "pm-1")
	require.NoError(t, err)
	require.NotNil(t, trans.Reason)
	assert.Equal(t, reason, *trans.Reason)
}

func TestCancelPaidTransactionRevokes(t *testing.T) {
	f := newFixture(t)
	f.create(t, "pm-1")
	f.call(t, MethodPerformTransaction, Params{ID: "pm-1"})
	require.Len(t, f.ledger.Entitlements, 1)

	reason := payment.ReasonRefund
	f.now = f.now.Add(time.Hour)
	resp := f.call(t, MethodCancelTransaction, Params{ID: "pm-1", Reason: &reason})
	require.Nil(t, resp.Error)
	result := resp.Result.(*CancelResult)
	assert.Equal(t, models.TransactionStatePaidCanceled, result.State)
	assert.Empty(t, f.ledger.Entitlements)

	// Repeated cancel replays the stored cancellation.
	replay := f.call(t, MethodCancelTransaction, Params{ID: "pm-1", Reason: &reason})
	require.Nil(t, replay.Error)
	assert.Equal(t, result.CancelTime, replay.Result.(*CancelResult).CancelTime)
}

func TestCheckTransaction(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "pm-1")

	f.now = f.now.Add(time.Minute)
	f.call(t, MethodPerformTransaction, Params{ID: "pm-1"})

	resp := f.call(t, MethodCheckTransaction, Params{ID: "pm-1"})
	require.Nil(t, resp.Error)
	result := resp.Result.(*CheckResult)
	assert.Equal(t, created.Transaction, result.Transaction)
	assert.Equal(t, created.CreateTime, result.CreateTime)
	assert.Equal(t, f.now.UnixMilli(), result.PerformTime)
	assert.Zero(t, result.CancelTime)
	assert.Equal(t, models.TransactionStatePaid, result.State)
	assert.Nil(t, result.Reason)

	missing := f.call(t, MethodCheckTransaction, Params{ID: "missing"})
	require.NotNil(t, missing.Error)
	assert.Equal(t, CodeTransactionNotFound, missing.Error.Code)
}

func TestGetStatement(t *testing.T) {
	f := newFixture(t)
	start := f.now
	f.create(t, "pm-1")

	other := ledgerSecondPurchase(f)
	f.now = start.Add(2 * time.Hour)
	f.call(t, MethodCreateTransaction, Params{
		ID:     "pm-2",
		Amount: other.EffectivePrice(f.now) * payment.TiyinPerSum,
		Account: &Account{
			PlanID: strconv.FormatUint(uint64(other.ID), 10),
			UserID: strconv.FormatUint(uint64(f.user.ID), 10),
		},
	})

	resp := f.call(t, MethodGetStatement, Params{
		From: start.Add(-time.Minute).UnixMilli(),
		To:   start.Add(time.Hour).UnixMilli(),
	})
	require.Nil(t, resp.Error)
	result := resp.Result.(*StatementResult)
	require.Len(t, result.Transactions, 1)
	entry := result.Transactions[0]
	assert.Equal(t, "pm-1", entry.ID)
	assert.Equal(t, models.TransactionStatePending, entry.State)
	assert.Equal(t, strconv.FormatUint(uint64(f.user.ID), 10), entry.Account.UserID)
}

func ledgerSecondPurchase(f *paymeFixture) *models.Plan {
	return f.ledger.AddPlan(&models.Plan{
		CourseID:        2,
		Package:         models.PlanPackageBasic,
		Price:           30000,
		AvailablePeriod: 30,
	})
}

func TestUnknownMethod(t *testing.T) {
	f := newFixture(t)
	resp := f.call(t, "RemoveTransaction", Params{})
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)
}
