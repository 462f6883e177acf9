// Package click implements the merchant side of the Click two-phase
// (prepare/complete) payment protocol.
package click

import (
	"context"
	"strconv"
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/entitlements"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment"
	"github.com/sirupsen/logrus"
)

// Service translates Click callbacks into ledger operations. Returned errors
// are storage faults only; every business rejection is encoded in the
// Response so the gateway gets its documented envelope with HTTP 200.
type Service struct {
	cfg     payment.ClickConfig
	ledger  payment.Ledger
	granter *entitlements.Granter
	now     func() time.Time
}

func NewService(cfg payment.ClickConfig, ledger payment.Ledger, granter *entitlements.Granter) *Service {
	return &Service{
		cfg:     cfg,
		ledger:  ledger,
		granter: granter,
		now:     time.Now,
	}
}

// HandleRequest dispatches on the action discriminator.
func (s *Service) HandleRequest(ctx context.Context, req *Request) (*Response, error) {
	switch req.Action {
	case ActionPrepare:
		return s.prepare(ctx, req)
	case ActionComplete:
		return s.complete(ctx, req)
	default:
		return errResponse(CodeActionNotFound, "Invalid action"), nil
	}
}

func (s *Service) prepare(ctx context.Context, req *Request) (*Response, error) {
	if !verifySignature(req, s.cfg.SecretKey) {
		logrus.WithField("click_trans_id", req.ClickTransID).Warn("click: invalid sign_string")
		return errResponse(CodeSignCheckFailed, "Invalid sign_string"), nil
	}

	planID, userID, ok := parseAccount(req)
	if !ok {
		return errResponse(CodeBadRequest, "Invalid planId or userId"), nil
	}

	if _, err := s.ledger.FindByUserPlanStatus(userID, planID, models.TransactionStatusPaid); err == nil {
		return errResponse(CodeAlreadyPaid, "Already paid"), nil
	} else if err != payment.ErrNotFound {
		return nil, err
	}

	if _, err := s.ledger.FindByUserPlanStatus(userID, planID, models.TransactionStatusCanceled); err == nil {
		return errResponse(CodeTransactionCanceled, "Transaction canceled"), nil
	} else if err != payment.ErrNotFound {
		return nil, err
	}

	if _, err := s.ledger.FindUser(userID); err != nil {
		if err == payment.ErrNotFound {
			return errResponse(CodeUserNotFound, "Invalid userId"), nil
		}
		return nil, err
	}

	plan, err := s.ledger.FindPlan(planID)
	if err != nil {
		if err == payment.ErrNotFound {
			return errResponse(CodeBadRequest, "Product not found"), nil
		}
		return nil, err
	}

	amount, ok := parseAmount(req.Amount)
	if !ok || amount != plan.EffectivePrice(s.now()) {
		return errResponse(CodeInvalidAmount, "Invalid amount"), nil
	}

	transID := strconv.FormatInt(req.ClickTransID, 10)
	if existing, err := s.ledger.FindByTransID(models.ProviderClick, transID); err == nil {
		return s.prepareReplay(req, existing), nil
	} else if err != payment.ErrNotFound {
		return nil, err
	}

	now := s.now()
	trans := &models.Transaction{
		TransID:   transID,
		Provider:  models.ProviderClick,
		UserID:    userID,
		PlanID:    planID,
		Amount:    amount,
		Status:    models.TransactionStatusPending,
		State:     models.TransactionStatePending,
		PrepareID: now.UnixMilli(),
		CreatedAt: now,
	}
	created, err := s.ledger.CreateTransaction(trans)
	if err != nil {
		return nil, err
	}
	if !created {
		// Lost the create/create race; answer from the winner's state.
		return s.prepareReplay(req, trans), nil
	}

	return &Response{
		ClickTransID:      req.ClickTransID,
		MerchantTransID:   req.MerchantTransID,
		MerchantPrepareID: trans.PrepareID,
		Error:             CodeSuccess,
		ErrorNote:         "Success",
	}, nil
}

// prepareReplay answers a repeated prepare for a transaction that already
// exists: pending ones get their original prepare id back, terminal ones are
// rejected (a canceled transaction is never resurrected).
func (s *Service) prepareReplay(req *Request, trans *models.Transaction) *Response {
	switch trans.Status {
	case models.TransactionStatusCanceled:
		return errResponse(CodeTransactionCanceled, "Transaction canceled")
	case models.TransactionStatusPaid:
		return errResponse(CodeAlreadyPaid, "Already paid")
	default:
		return &Response{
			ClickTransID:      req.ClickTransID,
			MerchantTransID:   req.MerchantTransID,
			MerchantPrepareID: trans.PrepareID,
			Error:             CodeSuccess,
			ErrorNote:         "Success",
		}
	}
}

func (s *Service) complete(ctx context.Context, req *Request) (*Response, error) {
	if !verifySignature(req, s.cfg.SecretKey) {
		logrus.WithField("click_trans_id", req.ClickTransID).Warn("click: invalid sign_string")
		return errResponse(CodeSignCheckFailed, "Invalid sign_string"), nil
	}

	planID, userID, ok := parseAccount(req)
	if !ok {
		return errResponse(CodeBadRequest, "Invalid planId or userId"), nil
	}

	user, err := s.ledger.FindUser(userID)
	if err != nil {
		if err == payment.ErrNotFound {
			return errResponse(CodeUserNotFound, "Invalid userId"), nil
		}
		return nil, err
	}

	plan, err := s.ledger.FindPlan(planID)
	if err != nil {
		if err == payment.ErrNotFound {
			return errResponse(CodeBadRequest, "Invalid planId"), nil
		}
		return nil, err
	}

	trans, err := s.ledger.FindByPrepareID(userID, planID, req.MerchantPrepareID)
	if err != nil {
		if err == payment.ErrNotFound {
			return errResponse(CodeTransactionNotFound, "Invalid merchant_prepare_id"), nil
		}
		return nil, err
	}

	switch trans.Status {
	case models.TransactionStatusPaid:
		// Gateway retry after a lost response: repeat the original payload.
		return s.completeSuccess(req, trans), nil
	case models.TransactionStatusCanceled:
		return errResponse(CodeTransactionCanceled, "Already canceled"), nil
	}

	amount, ok := parseAmount(req.Amount)
	if !ok || amount != plan.EffectivePrice(s.now()) {
		return errResponse(CodeInvalidAmount, "Invalid amount"), nil
	}

	now := s.now()
	if trans.IsExpired(now, s.cfg.ValidityWindow) {
		if _, err := s.cancel(trans, payment.ReasonTimeout, now); err != nil {
			return nil, err
		}
		return errResponse(CodeTransactionCanceled, "Transaction expired"), nil
	}

	// A nonzero error field means the payment failed on Click's side; record
	// the cancellation and echo the code back.
	if req.Error != 0 {
		if _, err := s.cancel(trans, req.Error, now); err != nil {
			return nil, err
		}
		return errResponse(req.Error, "Failed"), nil
	}

	ok, err = s.ledger.UpdateStatusIf(models.ProviderClick, trans.TransID, models.TransactionStatusPending, map[string]interface{}{
		"status":       models.TransactionStatusPaid,
		"state":        models.TransactionStatePaid,
		"perform_time": now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent complete got there first; answer from current state.
		current, err := s.ledger.FindByTransID(models.ProviderClick, trans.TransID)
		if err != nil {
			return nil, err
		}
		if current.Status == models.TransactionStatusPaid {
			return s.completeSuccess(req, current), nil
		}
		return errResponse(CodeTransactionCanceled, "Already canceled"), nil
	}

	if _, err := s.granter.Grant(ctx, user, plan); err != nil {
		return nil, err
	}

	trans.PerformTime = &now
	return s.completeSuccess(req, trans), nil
}

func (s *Service) completeSuccess(req *Request, trans *models.Transaction) *Response {
	var confirmID int64
	if trans.PerformTime != nil {
		confirmID = trans.PerformTime.UnixMilli()
	}
	return &Response{
		ClickTransID:      req.ClickTransID,
		MerchantTransID:   req.MerchantTransID,
		MerchantConfirmID: confirmID,
		Error:             CodeSuccess,
		ErrorNote:         "Success",
	}
}

func (s *Service) cancel(trans *models.Transaction, reason int, now time.Time) (bool, error) {
	return s.ledger.UpdateStatusIf(models.ProviderClick, trans.TransID, models.TransactionStatusPending, map[string]interface{}{
		"status":      models.TransactionStatusCanceled,
		"state":       models.TransactionStatePendingCanceled,
		"cancel_time": now,
		"reason":      reason,
	})
}

func parseAccount(req *Request) (planID, userID uint, ok bool) {
	p, err := strconv.ParseUint(req.MerchantTransID, 10, 32)
	if err != nil || p == 0 {
		return 0, 0, false
	}
	u, err := strconv.ParseUint(req.Param2, 10, 32)
	if err != nil || u == 0 {
		return 0, 0, false
	}
	return uint(p), uint(u), true
}

// parseAmount accepts the wire forms Click sends: "50000" and "50000.00".
func parseAmount(raw string) (int64, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	n := int64(f)
	if f != float64(n) {
		return 0, false
	}
	return n, true
}
