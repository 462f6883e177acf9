// Package paymenttest provides an in-memory Ledger for adapter tests.
package paymenttest

import (
	"sync"
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/payment"
)

// Ledger is a threadsafe in-memory payment.Ledger. Seed it with users, plans
// and transactions, then hand it to an adapter under test.
type Ledger struct {
	mu           sync.Mutex
	nextID       uint
	Users        map[uint]*models.User
	Plans        map[uint]*models.Plan
	Transactions []*models.Transaction
	Entitlements []*models.MyCourse
}

func NewLedger() *Ledger {
	return &Ledger{
		nextID: 1,
		Users:  make(map[uint]*models.User),
		Plans:  make(map[uint]*models.Plan),
	}
}

func (l *Ledger) AddUser(u *models.User) *models.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	if u.ID == 0 {
		u.ID = l.nextID
		l.nextID++
	}
	l.Users[u.ID] = u
	return u
}

func (l *Ledger) AddPlan(p *models.Plan) *models.Plan {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p.ID == 0 {
		p.ID = l.nextID
		l.nextID++
	}
	l.Plans[p.ID] = p
	return p
}

func (l *Ledger) FindByTransID(provider, transID string) (*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.Transactions {
		if t.Provider == provider && t.TransID == transID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, payment.ErrNotFound
}

func (l *Ledger) FindByPrepareID(userID, planID uint, prepareID int64) (*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.Transactions {
		if t.UserID == userID && t.PlanID == planID && t.PrepareID == prepareID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, payment.ErrNotFound
}

func (l *Ledger) FindByUserPlanStatus(userID, planID uint, status string) (*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.Transactions {
		if t.UserID == userID && t.PlanID == planID && t.Status == status {
			cp := *t
			return &cp, nil
		}
	}
	return nil, payment.ErrNotFound
}

func (l *Ledger) CreateTransaction(t *models.Transaction) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.Transactions {
		if existing.Provider == t.Provider && existing.TransID == t.TransID {
			*t = *existing
			return false, nil
		}
	}
	t.ID = l.nextID
	l.nextID++
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	cp := *t
	l.Transactions = append(l.Transactions, &cp)
	return true, nil
}

func (l *Ledger) UpdateStatusIf(provider, transID, expectedStatus string, updates map[string]interface{}) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.Transactions {
		if t.Provider != provider || t.TransID != transID || t.Status != expectedStatus {
			continue
		}
		applyUpdates(t, updates)
		return true, nil
	}
	return false, nil
}

func (l *Ledger) FindPlan(id uint) (*models.Plan, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.Plans[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, payment.ErrNotFound
}

func (l *Ledger) FindUser(id uint) (*models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if u, ok := l.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, payment.ErrNotFound
}

func (l *Ledger) FindEntitlement(userID, planID uint) (*models.MyCourse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.Entitlements {
		if e.UserID == userID && e.PlanID == planID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, payment.ErrNotFound
}

func (l *Ledger) CreateEntitlement(e *models.MyCourse) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.Entitlements {
		if existing.UserID == e.UserID && existing.PlanID == e.PlanID {
			return false, nil
		}
	}
	e.ID = l.nextID
	l.nextID++
	cp := *e
	l.Entitlements = append(l.Entitlements, &cp)
	return true, nil
}

func (l *Ledger) DeleteEntitlement(userID, planID uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.Entitlements[:0]
	for _, e := range l.Entitlements {
		if e.UserID != userID || e.PlanID != planID {
			kept = append(kept, e)
		}
	}
	l.Entitlements = kept
	return nil
}

func (l *Ledger) ListTransactions(f payment.StatementFilter) ([]models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Transaction
	for _, t := range l.Transactions {
		if f.Provider != "" && t.Provider != f.Provider {
			continue
		}
		if !f.From.IsZero() && t.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && t.CreatedAt.After(f.To) {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func applyUpdates(t *models.Transaction, updates map[string]interface{}) {
	for k, v := range updates {
		switch k {
		case "status":
			t.Status = v.(string)
		case "state":
			t.State = v.(int)
		case "perform_time":
			t.PerformTime = timePtr(v)
		case "cancel_time":
			t.CancelTime = timePtr(v)
		case "reason":
			if r, ok := v.(int); ok {
				t.Reason = &r
			} else if rp, ok := v.(*int); ok {
				t.Reason = rp
			}
		}
	}
}

func timePtr(v interface{}) *time.Time {
	switch tv := v.(type) {
	case time.Time:
		return &tv
	case *time.Time:
		return tv
	}
	return nil
}
