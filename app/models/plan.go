package models

import "time"

const (
	PlanPackageBasic    = "basic"
	PlanPackageStandard = "standard"
	PlanPackagePremium  = "premium"
)

// Plan is a purchasable access tier for a course. Prices are stored in sum
// (the currency's main unit); gateways that bill in tiyin scale before
// comparing.
type Plan struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	CourseID          uint       `gorm:"not null;index" json:"course_id"`
	Title             string     `gorm:"type:varchar(150);not null" json:"title" validate:"required,max=150"`
	Package           string     `gorm:"type:varchar(20);not null;default:'basic'" json:"package" validate:"oneof=basic standard premium"`
	Price             int64      `gorm:"not null" json:"price" validate:"gt=0"`
	Discount          int64      `gorm:"default:0" json:"discount"`
	DiscountExpiredAt *time.Time `gorm:"type:timestamp;default:null" json:"discount_expired_at,omitempty"`
	AvailablePeriod   int        `gorm:"not null;default:30" json:"available_period" validate:"gt=0"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// EffectivePrice returns the price a buyer must pay at the given moment:
// the discount while its window is open, the list price otherwise.
func (p *Plan) EffectivePrice(now time.Time) int64 {
	if p.Discount > 0 && p.DiscountExpiredAt != nil && !now.After(*p.DiscountExpiredAt) {
		return p.Discount
	}
	return p.Price
}
