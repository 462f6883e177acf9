package controllers

import (
	"sync"

	"github.com/akademia-dev/akademia-backend/internal/pkg/database"
	"github.com/akademia-dev/akademia-backend/internal/pkg/entitlements"
	"github.com/akademia-dev/akademia-backend/internal/pkg/notifications"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment/click"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment/payme"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment/uzum"
)

// The gateway services share one ledger and one granter so that every
// provider settles into the same transaction table and entitlement set.
var (
	paymentOnce  sync.Once
	clickService *click.Service
	paymeService *payme.Service
	uzumService  *uzum.Service
)

func setupPaymentServices() {
	paymentOnce.Do(func() {
		ledger := payment.NewLedger(database.GetDB())
		granter := entitlements.NewGranter(ledger, notifications.NewServiceFromEnv())
		clickService = click.NewService(payment.LoadClickConfig(), ledger, granter)
		paymeService = payme.NewService(payment.LoadPaymeConfig(), ledger, granter)
		uzumService = uzum.NewService(payment.LoadUzumConfig(), ledger, granter)
	})
}

func getClickService() *click.Service {
	setupPaymentServices()
	return clickService
}

func getPaymeService() *payme.Service {
	setupPaymentServices()
	return paymeService
}

func getUzumService() *uzum.Service {
	setupPaymentServices()
	return uzumService
}
