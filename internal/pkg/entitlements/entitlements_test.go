package entitlements

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment/paymenttest"
)

type fakeNotifier struct {
	calls int
	err   error
}

func (n *fakeNotifier) SendPurchaseNotification(ctx context.Context, user *models.User, plan *models.Plan) error {
	n.calls++
	return n.err
}

func TestGrant(t *testing.T) {
	ledger := paymenttest.NewLedger()
	user := ledger.AddUser(&models.User{Name: "Aziz"})
	plan := ledger.AddPlan(&models.Plan{CourseID: 4, Price: 50000, AvailablePeriod: 30})

	notifier := &fakeNotifier{}
	g := NewGranter(ledger, notifier)
	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return start }

	ent, err := g.Grant(context.Background(), user, plan)
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if got, want := ent.ExpirationDate, start.AddDate(0, 0, 30); !got.Equal(want) {
		t.Fatalf("expiration = %v, want %v", got, want)
	}
	if ent.CourseID != plan.CourseID {
		t.Fatalf("course id = %d, want %d", ent.CourseID, plan.CourseID)
	}
	if notifier.calls != 1 {
		t.Fatalf("notifications = %d, want 1", notifier.calls)
	}

	// Second grant for the same purchase is a quiet no-op.
	if _, err := g.Grant(context.Background(), user, plan); err != nil {
		t.Fatalf("repeated Grant: %v", err)
	}
	if len(ledger.Entitlements) != 1 {
		t.Fatalf("entitlements = %d, want 1", len(ledger.Entitlements))
	}
	if notifier.calls != 1 {
		t.Fatalf("notifications = %d, want 1 after repeat", notifier.calls)
	}
}

func TestGrantSurvivesNotifierFailure(t *testing.T) {
	ledger := paymenttest.NewLedger()
	user := ledger.AddUser(&models.User{Name: "Aziz"})
	plan := ledger.AddPlan(&models.Plan{CourseID: 4, Price: 50000, AvailablePeriod: 30})

	g := NewGranter(ledger, &fakeNotifier{err: errors.New("smtp down")})
	if _, err := g.Grant(context.Background(), user, plan); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if len(ledger.Entitlements) != 1 {
		t.Fatal("entitlement missing after notifier failure")
	}
}

func TestRevoke(t *testing.T) {
	ledger := paymenttest.NewLedger()
	user := ledger.AddUser(&models.User{Name: "Aziz"})
	plan := ledger.AddPlan(&models.Plan{CourseID: 4, Price: 50000, AvailablePeriod: 30})

	g := NewGranter(ledger, nil)
	if _, err := g.Grant(context.Background(), user, plan); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if err := g.Revoke(user.ID, plan.ID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if len(ledger.Entitlements) != 0 {
		t.Fatal("entitlement survived revoke")
	}

	// Revoking again stays a no-op.
	if err := g.Revoke(user.ID, plan.ID); err != nil {
		t.Fatalf("repeated Revoke: %v", err)
	}
}
