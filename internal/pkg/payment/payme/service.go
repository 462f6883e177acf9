// Package payme implements the merchant side of the Payme JSON-RPC protocol:
// one endpoint, Basic auth, six methods.
package payme

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/entitlements"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment"
	"github.com/sirupsen/logrus"
)

// Service translates Payme JSON-RPC calls into ledger operations. Returned
// errors are storage faults only; protocol rejections travel as *Error inside
// the Response, always with HTTP 200.
type Service struct {
	cfg     payment.PaymeConfig
	ledger  payment.Ledger
	granter *entitlements.Granter
	now     func() time.Time
}

func NewService(cfg payment.PaymeConfig, ledger payment.Ledger, granter *entitlements.Granter) *Service {
	return &Service{
		cfg:     cfg,
		ledger:  ledger,
		granter: granter,
		now:     time.Now,
	}
}

// VerifyBasicAuth checks the Authorization header against the merchant
// credentials. The comparison is constant time on the decoded pair.
func (s *Service) VerifyBasicAuth(header string) bool {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) || s.cfg.Password == "" {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, prefix))
	if err != nil {
		return false
	}
	want := s.cfg.Login + ":" + s.cfg.Password
	return subtle.ConstantTimeCompare(decoded, []byte(want)) == 1
}

// UnauthorizedResponse is the envelope for a failed Basic-auth check. The
// controller sends it without ever reaching HandleRequest.
func UnauthorizedResponse(id int64) *Response {
	return &Response{ID: id, Error: errUnauthorized()}
}

func (s *Service) HandleRequest(ctx context.Context, req *Request) (*Response, error) {
	var (
		result interface{}
		rpcErr *Error
		err    error
	)
	switch req.Method {
	case MethodCheckPerformTransaction:
		result, rpcErr, err = s.checkPerform(&req.Params)
	case MethodCreateTransaction:
		result, rpcErr, err = s.create(&req.Params)
	case MethodPerformTransaction:
		result, rpcErr, err = s.perform(ctx, &req.Params)
	case MethodCancelTransaction:
		result, rpcErr, err = s.cancel(&req.Params)
	case MethodCheckTransaction:
		result, rpcErr, err = s.check(&req.Params)
	case MethodGetStatement:
		result, rpcErr, err = s.statement(&req.Params)
	default:
		logrus.WithField("method", req.Method).Warn("payme: unknown method")
		rpcErr = errMethodNotFound()
	}
	if err != nil {
		return nil, err
	}
	if rpcErr != nil {
		return &Response{ID: req.ID, Error: rpcErr}, nil
	}
	return &Response{ID: req.ID, Result: result}, nil
}

func (s *Service) checkPerform(p *Params) (interface{}, *Error, error) {
	_, plan, rpcErr, err := s.resolveAccount(p.Account)
	if rpcErr != nil || err != nil {
		return nil, rpcErr, err
	}
	if p.Amount != plan.EffectivePrice(s.now())*payment.TiyinPerSum {
		return nil, errInvalidAmount(), nil
	}
	return &CheckPerformResult{Allow: true}, nil, nil
}

func (s *Service) create(p *Params) (interface{}, *Error, error) {
	userID, plan, rpcErr, err := s.resolveAccount(p.Account)
	if rpcErr != nil || err != nil {
		return nil, rpcErr, err
	}

	if existing, err := s.ledger.FindByTransID(models.ProviderPayme, p.ID); err == nil {
		return s.createReplay(existing)
	} else if err != payment.ErrNotFound {
		return nil, nil, err
	}

	if p.Amount != plan.EffectivePrice(s.now())*payment.TiyinPerSum {
		return nil, errInvalidAmount(), nil
	}

	// One pending Payme attempt per (user, plan) at a time; a second gateway
	// transaction for the same purchase is refused until the first settles.
	if other, err := s.ledger.FindByUserPlanStatus(userID, plan.ID, models.TransactionStatusPending); err == nil {
		if other.Provider == models.ProviderPayme && other.TransID != p.ID {
			return nil, errCantDoOperation(), nil
		}
	} else if err != payment.ErrNotFound {
		return nil, nil, err
	}

	trans := &models.Transaction{
		TransID:   p.ID,
		Provider:  models.ProviderPayme,
		UserID:    userID,
		PlanID:    plan.ID,
		Amount:    p.Amount,
		Status:    models.TransactionStatusPending,
		State:     models.TransactionStatePending,
		CreatedAt: s.now(),
	}
	created, err := s.ledger.CreateTransaction(trans)
	if err != nil {
		return nil, nil, err
	}
	if !created {
		// Lost the create/create race; trans now holds the winner's row.
		return s.createReplay(trans)
	}
	return &CreateResult{
		Transaction: internalID(trans),
		State:       trans.State,
		CreateTime:  trans.CreatedAt.UnixMilli(),
	}, nil, nil
}

// createReplay answers a repeated CreateTransaction for a known gateway id. A
// still-valid pending transaction replays its original result; an expired one
// is canceled first and reported as such.
func (s *Service) createReplay(trans *models.Transaction) (interface{}, *Error, error) {
	if trans.Status != models.TransactionStatusPending {
		return nil, errCantDoOperation(), nil
	}
	now := s.now()
	if trans.IsExpired(now, s.cfg.ValidityWindow) {
		if _, err := s.cancelPending(trans.TransID, payment.ReasonTimeout, now); err != nil {
			return nil, nil, err
		}
		return nil, s.timeoutError(), nil
	}
	return &CreateResult{
		Transaction: internalID(trans),
		State:       trans.State,
		CreateTime:  trans.CreatedAt.UnixMilli(),
	}, nil, nil
}

func (s *Service) perform(ctx context.Context, p *Params) (interface{}, *Error, error) {
	trans, err := s.ledger.FindByTransID(models.ProviderPayme, p.ID)
	if err != nil {
		if err == payment.ErrNotFound {
			return nil, errTransactionNotFound(), nil
		}
		return nil, nil, err
	}

	switch trans.Status {
	case models.TransactionStatusPaid:
		// Gateway retry after a lost response: repeat the original payload.
		return performResult(trans), nil, nil
	case models.TransactionStatusCanceled:
		return nil, errCantDoOperation(), nil
	}

	now := s.now()
	if trans.IsExpired(now, s.cfg.ValidityWindow) {
		if _, err := s.cancelPending(trans.TransID, payment.ReasonTimeout, now); err != nil {
			return nil, nil, err
		}
		return nil, s.timeoutError(), nil
	}

	user, err := s.ledger.FindUser(trans.UserID)
	if err != nil {
		if err == payment.ErrNotFound {
			return nil, errUserNotFound(), nil
		}
		return nil, nil, err
	}
	plan, err := s.ledger.FindPlan(trans.PlanID)
	if err != nil {
		if err == payment.ErrNotFound {
			return nil, errProductNotFound(), nil
		}
		return nil, nil, err
	}

	ok, err := s.ledger.UpdateStatusIf(models.ProviderPayme, trans.TransID, models.TransactionStatusPending, map[string]interface{}{
		"status":       models.TransactionStatusPaid,
		"state":        models.TransactionStatePaid,
		"perform_time": now,
	})
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		// A concurrent perform or cancel got there first.
		current, err := s.ledger.FindByTransID(models.ProviderPayme, trans.TransID)
		if err != nil {
			return nil, nil, err
		}
		if current.Status == models.TransactionStatusPaid {
			return performResult(current), nil, nil
		}
		return nil, errCantDoOperation(), nil
	}

	if _, err := s.granter.Grant(ctx, user, plan); err != nil {
		return nil, nil, err
	}

	trans.State = models.TransactionStatePaid
	trans.PerformTime = &now
	return performResult(trans), nil, nil
}

func (s *Service) cancel(p *Params) (interface{}, *Error, error) {
	trans, err := s.ledger.FindByTransID(models.ProviderPayme, p.ID)
	if err != nil {
		if err == payment.ErrNotFound {
			return nil, errTransactionNotFound(), nil
		}
		return nil, nil, err
	}

	reason := payment.ReasonUnknown
	if p.Reason != nil {
		reason = *p.Reason
	}
	now := s.now()

	switch trans.Status {
	case models.TransactionStatusCanceled:
		return cancelResult(trans), nil, nil

	case models.TransactionStatusPending:
		ok, err := s.cancelPending(trans.TransID, reason, now)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			current, err := s.ledger.FindByTransID(models.ProviderPayme, trans.TransID)
			if err != nil {
				return nil, nil, err
			}
			if current.Status == models.TransactionStatusCanceled {
				return cancelResult(current), nil, nil
			}
			// Raced against perform; fall through to the paid path.
			trans = current
		} else {
			trans.State = models.TransactionStatePendingCanceled
			trans.CancelTime = &now
			trans.Reason = &reason
			return cancelResult(trans), nil, nil
		}
	}

	// Cancel after payment reverses the purchase as well.
	if err := s.granter.Revoke(trans.UserID, trans.PlanID); err != nil {
		return nil, nil, err
	}
	ok, err := s.ledger.UpdateStatusIf(models.ProviderPayme, trans.TransID, models.TransactionStatusPaid, map[string]interface{}{
		"status":      models.TransactionStatusCanceled,
		"state":       models.TransactionStatePaidCanceled,
		"cancel_time": now,
		"reason":      reason,
	})
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		current, err := s.ledger.FindByTransID(models.ProviderPayme, trans.TransID)
		if err != nil {
			return nil, nil, err
		}
		return cancelResult(current), nil, nil
	}
	trans.State = models.TransactionStatePaidCanceled
	trans.CancelTime = &now
	trans.Reason = &reason
	return cancelResult(trans), nil, nil
}

func (s *Service) check(p *Params) (interface{}, *Error, error) {
	trans, err := s.ledger.FindByTransID(models.ProviderPayme, p.ID)
	if err != nil {
		if err == payment.ErrNotFound {
			return nil, errTransactionNotFound(), nil
		}
		return nil, nil, err
	}
	return &CheckResult{
		CreateTime:  trans.CreatedAt.UnixMilli(),
		PerformTime: unixMilliOrZero(trans.PerformTime),
		CancelTime:  unixMilliOrZero(trans.CancelTime),
		Transaction: internalID(trans),
		State:       trans.State,
		Reason:      trans.Reason,
	}, nil, nil
}

func (s *Service) statement(p *Params) (interface{}, *Error, error) {
	list, err := s.ledger.ListTransactions(payment.StatementFilter{
		Provider: models.ProviderPayme,
		From:     time.UnixMilli(p.From),
		To:       time.UnixMilli(p.To),
	})
	if err != nil {
		return nil, nil, err
	}
	entries := make([]StatementEntry, 0, len(list))
	for i := range list {
		t := &list[i]
		entries = append(entries, StatementEntry{
			ID:     t.TransID,
			Time:   t.CreatedAt.UnixMilli(),
			Amount: t.Amount,
			Account: Account{
				PlanID: strconv.FormatUint(uint64(t.PlanID), 10),
				UserID: strconv.FormatUint(uint64(t.UserID), 10),
			},
			CreateTime:  t.CreatedAt.UnixMilli(),
			PerformTime: unixMilliOrZero(t.PerformTime),
			CancelTime:  unixMilliOrZero(t.CancelTime),
			Transaction: internalID(t),
			State:       t.State,
			Reason:      t.Reason,
		})
	}
	return &StatementResult{Transactions: entries}, nil, nil
}

// resolveAccount validates the account block and loads both referenced rows.
// Exactly one of (userID+plan), rpcErr, err is meaningful.
func (s *Service) resolveAccount(acc *Account) (uint, *models.Plan, *Error, error) {
	if acc == nil {
		return 0, nil, errUserNotFound(), nil
	}
	userID, ok := parseID(acc.UserID)
	if !ok {
		return 0, nil, errUserNotFound(), nil
	}
	planID, ok := parseID(acc.PlanID)
	if !ok {
		return 0, nil, errProductNotFound(), nil
	}
	if _, err := s.ledger.FindUser(userID); err != nil {
		if err == payment.ErrNotFound {
			return 0, nil, errUserNotFound(), nil
		}
		return 0, nil, nil, err
	}
	plan, err := s.ledger.FindPlan(planID)
	if err != nil {
		if err == payment.ErrNotFound {
			return 0, nil, errProductNotFound(), nil
		}
		return 0, nil, nil, err
	}
	return userID, plan, nil, nil
}

func (s *Service) cancelPending(transID string, reason int, now time.Time) (bool, error) {
	return s.ledger.UpdateStatusIf(models.ProviderPayme, transID, models.TransactionStatusPending, map[string]interface{}{
		"status":      models.TransactionStatusCanceled,
		"state":       models.TransactionStatePendingCanceled,
		"cancel_time": now,
		"reason":      reason,
	})
}

// timeoutError reports a transaction canceled for outliving the validity
// window; Payme expects the final state and reason on the error itself.
func (s *Service) timeoutError() *Error {
	e := errCantDoOperation()
	e.State = models.TransactionStatePendingCanceled
	reason := payment.ReasonTimeout
	e.Reason = &reason
	return e
}

// internalID is our ledger row id as Payme's "transaction" string.
func internalID(t *models.Transaction) string {
	return strconv.FormatUint(uint64(t.ID), 10)
}

func performResult(t *models.Transaction) *PerformResult {
	return &PerformResult{
		Transaction: internalID(t),
		State:       t.State,
		PerformTime: unixMilliOrZero(t.PerformTime),
	}
}

func cancelResult(t *models.Transaction) *CancelResult {
	return &CancelResult{
		Transaction: internalID(t),
		State:       t.State,
		CancelTime:  unixMilliOrZero(t.CancelTime),
	}
}

func unixMilliOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

func parseID(raw string) (uint, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
