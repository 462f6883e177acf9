package models

import "time"

const (
	ProviderClick = "click"
	ProviderPayme = "payme"
	ProviderUzum  = "uzum"
)

const (
	TransactionStatusPending  = "PENDING"
	TransactionStatusPaid     = "PAID"
	TransactionStatusCanceled = "CANCELED"
)

// Payme protocol phase codes. They are stored alongside the coarse status
// because the gateway asks for them back verbatim in CheckTransaction and
// GetStatement responses.
const (
	TransactionStatePending         = 1
	TransactionStatePaid            = 2
	TransactionStatePendingCanceled = -1
	TransactionStatePaidCanceled    = -2
)

// Transaction is one payment attempt reported by a gateway. trans_id is the
// gateway's own identifier and is the idempotency key within that provider's
// namespace, hence the composite unique index. Rows are never deleted;
// cancellation is a status so that replays and statements keep working.
type Transaction struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TransID     string     `gorm:"type:varchar(64);not null;index:ux_transactions_provider_transid,unique,priority:2" json:"trans_id"`
	Provider    string     `gorm:"type:varchar(16);not null;index:ux_transactions_provider_transid,unique,priority:1" json:"provider"`
	UserID      uint       `gorm:"not null;index:idx_transactions_user_plan,priority:1" json:"user_id"`
	PlanID      uint       `gorm:"not null;index:idx_transactions_user_plan,priority:2" json:"plan_id"`
	Amount      int64      `gorm:"not null" json:"amount"`
	Status      string     `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	State       int        `gorm:"not null;default:1" json:"state"`
	PrepareID   int64      `gorm:"index" json:"prepare_id"`
	PerformTime *time.Time `gorm:"type:timestamp;default:null" json:"perform_time,omitempty"`
	CancelTime  *time.Time `gorm:"type:timestamp;default:null" json:"cancel_time,omitempty"`
	Reason      *int       `json:"reason,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsExpired reports whether a pending transaction has outlived the provider's
// validity window.
func (t *Transaction) IsExpired(now time.Time, window time.Duration) bool {
	return now.Sub(t.CreatedAt) > window
}
