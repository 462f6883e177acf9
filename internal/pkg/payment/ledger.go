package payment

import (
	"errors"
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatementFilter selects transactions for a provider's statement query.
type StatementFilter struct {
	Provider string
	From     time.Time
	To       time.Time
}

// Ledger is the persistence contract the provider adapters operate against.
// All mutating operations are atomic per key: transaction creation relies on
// the (provider, trans_id) unique index, status transitions guard the
// expected current status inside the same write, and entitlement creation is
// an insert-if-absent. Lookups return ErrNotFound when no row matches.
type Ledger interface {
	FindByTransID(provider, transID string) (*models.Transaction, error)
	FindByPrepareID(userID, planID uint, prepareID int64) (*models.Transaction, error)
	FindByUserPlanStatus(userID, planID uint, status string) (*models.Transaction, error)
	// CreateTransaction inserts the row; created=false means another call
	// already owns this (provider, trans_id) pair.
	CreateTransaction(t *models.Transaction) (created bool, err error)
	// UpdateStatusIf applies updates only while the row still has the
	// expected status; ok=false means the guard lost the race.
	UpdateStatusIf(provider, transID, expectedStatus string, updates map[string]interface{}) (ok bool, err error)
	FindPlan(id uint) (*models.Plan, error)
	FindUser(id uint) (*models.User, error)
	FindEntitlement(userID, planID uint) (*models.MyCourse, error)
	// CreateEntitlement inserts unless a (user_id, plan_id) row exists;
	// created=false is success, not an error.
	CreateEntitlement(e *models.MyCourse) (created bool, err error)
	// DeleteEntitlement is a no-op when nothing matches.
	DeleteEntitlement(userID, planID uint) error
	ListTransactions(f StatementFilter) ([]models.Transaction, error)
}

type gormLedger struct {
	db *gorm.DB
}

// NewLedger creates a transaction ledger backed by GORM.
func NewLedger(db *gorm.DB) Ledger {
	return &gormLedger{db: db}
}

func (l *gormLedger) FindByTransID(provider, transID string) (*models.Transaction, error) {
	var t models.Transaction
	err := l.db.Where("provider = ? AND trans_id = ?", provider, transID).First(&t).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &t, nil
}

func (l *gormLedger) FindByPrepareID(userID, planID uint, prepareID int64) (*models.Transaction, error) {
	var t models.Transaction
	err := l.db.Where("user_id = ? AND plan_id = ? AND prepare_id = ?", userID, planID, prepareID).First(&t).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &t, nil
}

func (l *gormLedger) FindByUserPlanStatus(userID, planID uint, status string) (*models.Transaction, error) {
	var t models.Transaction
	err := l.db.Where("user_id = ? AND plan_id = ? AND status = ?", userID, planID, status).First(&t).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &t, nil
}

func (l *gormLedger) CreateTransaction(t *models.Transaction) (bool, error) {
	tx := l.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "trans_id"},
		},
		DoNothing: true,
	}).Create(t)
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected > 0 {
		return true, nil
	}
	// Lost the create/create race; hand back the winner's row.
	return false, l.db.Where("provider = ? AND trans_id = ?", t.Provider, t.TransID).First(t).Error
}

func (l *gormLedger) UpdateStatusIf(provider, transID, expectedStatus string, updates map[string]interface{}) (bool, error) {
	tx := l.db.Model(&models.Transaction{}).
		Where("provider = ? AND trans_id = ? AND status = ?", provider, transID, expectedStatus).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (l *gormLedger) FindPlan(id uint) (*models.Plan, error) {
	var p models.Plan
	if err := l.db.First(&p, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &p, nil
}

func (l *gormLedger) FindUser(id uint) (*models.User, error) {
	var u models.User
	if err := l.db.First(&u, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &u, nil
}

func (l *gormLedger) FindEntitlement(userID, planID uint) (*models.MyCourse, error) {
	var m models.MyCourse
	err := l.db.Where("user_id = ? AND plan_id = ?", userID, planID).First(&m).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &m, nil
}

func (l *gormLedger) CreateEntitlement(e *models.MyCourse) (bool, error) {
	tx := l.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "plan_id"},
		},
		DoNothing: true,
	}).Create(e)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (l *gormLedger) DeleteEntitlement(userID, planID uint) error {
	return l.db.Where("user_id = ? AND plan_id = ?", userID, planID).Delete(&models.MyCourse{}).Error
}

func (l *gormLedger) ListTransactions(f StatementFilter) ([]models.Transaction, error) {
	var out []models.Transaction
	q := l.db.Model(&models.Transaction{})
	if f.Provider != "" {
		q = q.Where("provider = ?", f.Provider)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at <= ?", f.To)
	}
	err := q.Order("created_at ASC").Find(&out).Error
	return out, err
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
