package entitlements

import (
	"context"
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment"
	"github.com/sirupsen/logrus"
)

const notifyTimeout = 10 * time.Second

// Notifier delivers the purchase confirmation; failures never affect the
// grant itself.
type Notifier interface {
	SendPurchaseNotification(ctx context.Context, user *models.User, plan *models.Plan) error
}

// Granter creates and revokes course entitlements. Creation is idempotent per
// (user, plan) via the ledger's unique-insert, so concurrent perform/confirm
// callbacks cannot produce a double grant.
type Granter struct {
	ledger   payment.Ledger
	notifier Notifier
	now      func() time.Time
}

func NewGranter(ledger payment.Ledger, notifier Notifier) *Granter {
	return &Granter{
		ledger:   ledger,
		notifier: notifier,
		now:      time.Now,
	}
}

// Grant gives the user access to the plan's course until now plus the plan's
// available period. A pre-existing entitlement is success, not an error. The
// notification is dispatched best-effort with its own deadline and only for a
// fresh grant.
func (g *Granter) Grant(ctx context.Context, user *models.User, plan *models.Plan) (*models.MyCourse, error) {
	entitlement := &models.MyCourse{
		UserID:         user.ID,
		PlanID:         plan.ID,
		CourseID:       plan.CourseID,
		ExpirationDate: g.now().AddDate(0, 0, plan.AvailablePeriod),
	}

	created, err := g.ledger.CreateEntitlement(entitlement)
	if err != nil {
		return nil, err
	}

	if created && g.notifier != nil {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := g.notifier.SendPurchaseNotification(nctx, user, plan); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"user_id": user.ID,
				"plan_id": plan.ID,
			}).Warn("purchase notification failed")
		}
	}

	return entitlement, nil
}

// Revoke removes the entitlement for (user, plan). Revoking a non-existent
// entitlement is a no-op so that repeated reversals stay safe.
func (g *Granter) Revoke(userID, planID uint) error {
	return g.ledger.DeleteEntitlement(userID, planID)
}
