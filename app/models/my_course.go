package models

import "time"

// MyCourse grants a user time-boxed access to a course under a plan. The
// (user_id, plan_id) unique index is what makes entitlement creation
// idempotent under concurrent perform/confirm callbacks.
type MyCourse struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index:ux_my_courses_user_plan,unique,priority:1" json:"user_id"`
	PlanID         uint      `gorm:"not null;index:ux_my_courses_user_plan,unique,priority:2" json:"plan_id"`
	CourseID       uint      `gorm:"not null;index" json:"course_id"`
	ExpirationDate time.Time `gorm:"type:timestamp;not null" json:"expiration_date"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsExpired reports whether the access window has already closed.
func (m *MyCourse) IsExpired(now time.Time) bool {
	return now.After(m.ExpirationDate)
}
