// Package uzum implements the merchant side of the Uzum four-phase
// (check/create/confirm/reverse) payment protocol.
package uzum

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/entitlements"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment"
	"github.com/sirupsen/logrus"
)

// Service translates Uzum phase callbacks into ledger operations. Create and
// confirm are strict single-shot: a duplicate gets an errorCode, never a
// second side effect. Reverse is the one idempotent phase since Uzum retries
// it until it sees REVERSED. Returned errors are storage faults only.
type Service struct {
	cfg     payment.UzumConfig
	ledger  payment.Ledger
	granter *entitlements.Granter
	now     func() time.Time
}

func NewService(cfg payment.UzumConfig, ledger payment.Ledger, granter *entitlements.Granter) *Service {
	return &Service{
		cfg:     cfg,
		ledger:  ledger,
		granter: granter,
		now:     time.Now,
	}
}

// Check validates that the purchase could proceed: known service, known user
// and plan, amount matching the current effective price.
func (s *Service) Check(ctx context.Context, req *Request) (*Response, error) {
	if req.ServiceID != s.cfg.ServiceID {
		return s.failed(CodeInvalidServiceID), nil
	}
	_, plan, code, err := s.resolveAccount(req.Params)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return s.failed(code), nil
	}
	if req.Amount != 0 && req.Amount != plan.EffectivePrice(s.now())*payment.TiyinPerSum {
		return s.failed(CodeInvalidPaymentData), nil
	}
	resp := s.envelope(StatusOK)
	resp.Data = &ResponseData{Account: req.Params}
	return resp, nil
}

// Create registers the pending transaction. A transId Uzum already used is
// refused; this phase never replays.
func (s *Service) Create(ctx context.Context, req *Request) (*Response, error) {
	if req.ServiceID != s.cfg.ServiceID {
		return s.failed(CodeInvalidServiceID), nil
	}
	if req.TransID == "" {
		return s.failed(CodeInvalidPaymentData), nil
	}
	userID, plan, code, err := s.resolveAccount(req.Params)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return s.failed(code), nil
	}
	if req.Amount != plan.EffectivePrice(s.now())*payment.TiyinPerSum {
		return s.failed(CodeInvalidPaymentData), nil
	}

	now := s.now()
	trans := &models.Transaction{
		TransID:   req.TransID,
		Provider:  models.ProviderUzum,
		UserID:    userID,
		PlanID:    plan.ID,
		Amount:    req.Amount,
		Status:    models.TransactionStatusPending,
		State:     models.TransactionStatePending,
		CreatedAt: now,
	}
	created, err := s.ledger.CreateTransaction(trans)
	if err != nil {
		return nil, err
	}
	if !created {
		logrus.WithField("trans_id", req.TransID).Warn("uzum: duplicate create")
		return s.failed(CodeAlreadyProcessed), nil
	}

	resp := s.envelope(StatusCreated)
	resp.TransID = trans.TransID
	resp.TransTime = trans.CreatedAt.UnixMilli()
	resp.Amount = trans.Amount
	return resp, nil
}

// Confirm settles the pending transaction and grants the course. Confirming
// anything but a pending transaction is refused.
func (s *Service) Confirm(ctx context.Context, req *Request) (*Response, error) {
	if req.ServiceID != s.cfg.ServiceID {
		return s.failed(CodeInvalidServiceID), nil
	}
	trans, err := s.ledger.FindByTransID(models.ProviderUzum, req.TransID)
	if err != nil {
		if err == payment.ErrNotFound {
			return s.failed(CodeNotFound), nil
		}
		return nil, err
	}
	if trans.Status != models.TransactionStatusPending {
		return s.failed(CodeAlreadyProcessed), nil
	}

	user, err := s.ledger.FindUser(trans.UserID)
	if err != nil {
		if err == payment.ErrNotFound {
			return s.failed(CodeInvalidPaymentData), nil
		}
		return nil, err
	}
	plan, err := s.ledger.FindPlan(trans.PlanID)
	if err != nil {
		if err == payment.ErrNotFound {
			return s.failed(CodeInvalidPaymentData), nil
		}
		return nil, err
	}

	now := s.now()
	ok, err := s.ledger.UpdateStatusIf(models.ProviderUzum, trans.TransID, models.TransactionStatusPending, map[string]interface{}{
		"status":       models.TransactionStatusPaid,
		"state":        models.TransactionStatePaid,
		"perform_time": now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return s.failed(CodeAlreadyProcessed), nil
	}

	if _, err := s.granter.Grant(ctx, user, plan); err != nil {
		return nil, err
	}

	resp := s.envelope(StatusConfirmed)
	resp.TransID = trans.TransID
	resp.ConfirmTime = now.UnixMilli()
	resp.Amount = trans.Amount
	return resp, nil
}

// Reverse cancels the transaction and revokes any granted course. Reversing
// an already reversed transaction replays the REVERSED envelope.
func (s *Service) Reverse(ctx context.Context, req *Request) (*Response, error) {
	if req.ServiceID != s.cfg.ServiceID {
		return s.failed(CodeInvalidServiceID), nil
	}
	trans, err := s.ledger.FindByTransID(models.ProviderUzum, req.TransID)
	if err != nil {
		if err == payment.ErrNotFound {
			return s.failed(CodeNotFound), nil
		}
		return nil, err
	}

	now := s.now()
	switch trans.Status {
	case models.TransactionStatusCanceled:
		return s.reversed(trans, trans.CancelTime), nil

	case models.TransactionStatusPaid:
		if err := s.granter.Revoke(trans.UserID, trans.PlanID); err != nil {
			return nil, err
		}
		ok, err := s.cancelWith(trans.TransID, models.TransactionStatusPaid, models.TransactionStatePaidCanceled, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			return s.replayReverse(trans.TransID)
		}

	default:
		ok, err := s.cancelWith(trans.TransID, models.TransactionStatusPending, models.TransactionStatePendingCanceled, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			return s.replayReverse(trans.TransID)
		}
	}

	return s.reversed(trans, &now), nil
}

// Status reports where the transaction is in its lifecycle.
func (s *Service) Status(ctx context.Context, req *Request) (*Response, error) {
	if req.ServiceID != s.cfg.ServiceID {
		return s.failed(CodeInvalidServiceID), nil
	}
	trans, err := s.ledger.FindByTransID(models.ProviderUzum, req.TransID)
	if err != nil {
		if err == payment.ErrNotFound {
			return s.failed(CodeNotFound), nil
		}
		return nil, err
	}

	resp := s.envelope(statusOf(trans))
	resp.TransID = trans.TransID
	resp.TransTime = trans.CreatedAt.UnixMilli()
	resp.Amount = trans.Amount
	if trans.PerformTime != nil {
		resp.ConfirmTime = trans.PerformTime.UnixMilli()
	}
	if trans.CancelTime != nil {
		resp.ReverseTime = trans.CancelTime.UnixMilli()
	}
	return resp, nil
}

func statusOf(t *models.Transaction) string {
	switch t.Status {
	case models.TransactionStatusPaid:
		return StatusConfirmed
	case models.TransactionStatusCanceled:
		return StatusReversed
	default:
		return StatusCreated
	}
}

// replayReverse answers a reverse that lost its status-guard race by reading
// the final row back.
func (s *Service) replayReverse(transID string) (*Response, error) {
	current, err := s.ledger.FindByTransID(models.ProviderUzum, transID)
	if err != nil {
		return nil, err
	}
	if current.Status == models.TransactionStatusCanceled {
		return s.reversed(current, current.CancelTime), nil
	}
	return s.failed(CodeAlreadyProcessed), nil
}

func (s *Service) cancelWith(transID, expectedStatus string, state int, now time.Time) (bool, error) {
	return s.ledger.UpdateStatusIf(models.ProviderUzum, transID, expectedStatus, map[string]interface{}{
		"status":      models.TransactionStatusCanceled,
		"state":       state,
		"cancel_time": now,
		"reason":      payment.ReasonRefund,
	})
}

func (s *Service) reversed(trans *models.Transaction, reverseTime *time.Time) *Response {
	resp := s.envelope(StatusReversed)
	resp.TransID = trans.TransID
	resp.Amount = trans.Amount
	if reverseTime != nil {
		resp.ReverseTime = reverseTime.UnixMilli()
	}
	return resp
}

// resolveAccount validates the params block and loads the referenced rows;
// code is nonzero on a protocol rejection.
func (s *Service) resolveAccount(params *RequestParams) (uint, *models.Plan, int, error) {
	if params == nil {
		return 0, nil, CodeInvalidPaymentData, nil
	}
	userID, ok := parseID(params.UserID)
	if !ok {
		return 0, nil, CodeInvalidPaymentData, nil
	}
	planID, ok := parseID(params.PlanID)
	if !ok {
		return 0, nil, CodeInvalidPaymentData, nil
	}
	if _, err := s.ledger.FindUser(userID); err != nil {
		if err == payment.ErrNotFound {
			return 0, nil, CodeNotFound, nil
		}
		return 0, nil, 0, err
	}
	plan, err := s.ledger.FindPlan(planID)
	if err != nil {
		if err == payment.ErrNotFound {
			return 0, nil, CodeNotFound, nil
		}
		return 0, nil, 0, err
	}
	return userID, plan, 0, nil
}

func (s *Service) envelope(status string) *Response {
	return &Response{
		ServiceID: s.cfg.ServiceID,
		Timestamp: s.now().UnixMilli(),
		Status:    status,
	}
}

func (s *Service) failed(code int) *Response {
	resp := s.envelope(StatusFailed)
	resp.ErrorCode = code
	return resp
}

func parseID(raw string) (uint, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
