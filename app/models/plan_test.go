package models

import (
	"testing"
	"time"
)

func TestEffectivePrice(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	tests := []struct {
		name string
		plan Plan
		want int64
	}{
		{name: "no discount", plan: Plan{Price: 50000}, want: 50000},
		{name: "active discount", plan: Plan{Price: 50000, Discount: 40000, DiscountExpiredAt: &tomorrow}, want: 40000},
		{name: "expired discount", plan: Plan{Price: 50000, Discount: 40000, DiscountExpiredAt: &yesterday}, want: 50000},
		{name: "discount without window", plan: Plan{Price: 50000, Discount: 40000}, want: 50000},
		{name: "zero discount with window", plan: Plan{Price: 50000, Discount: 0, DiscountExpiredAt: &tomorrow}, want: 50000},
		{name: "boundary is inclusive", plan: Plan{Price: 50000, Discount: 40000, DiscountExpiredAt: &now}, want: 40000},
	}

	for _, tt := range tests {
		if got := tt.plan.EffectivePrice(now); got != tt.want {
			t.Fatalf("%s: EffectivePrice() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestTransactionIsExpired(t *testing.T) {
	now := time.Now()
	tx := Transaction{CreatedAt: now.Add(-13 * time.Minute)}

	if !tx.IsExpired(now, 12*time.Minute) {
		t.Fatal("expected transaction older than the window to be expired")
	}
	if tx.IsExpired(now, 720*time.Minute) {
		t.Fatal("expected transaction inside the window to be valid")
	}
}
