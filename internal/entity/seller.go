package entity

import "time"

// Seller represents the seller table.
type Seller struct {
	ID        string    `db:"id"`
	StoreName string    `db:"store_name"`
	Email     string    `db:"email"`
	Plan      PlanName  `db:"plan"`
	CreatedAt time.Time `db:"created_at"`
}

// PlanName is the custom type to enforce enum-like behavior
type PlanName string

const (
	PlanFree    PlanName = "free"
	PlanStarter PlanName = "starter"
	PlanPro     PlanName = "pro"
)

// ValidPlanNames is a set of valid subscription plan names
var ValidPlanNames = map[PlanName]bool{
	PlanFree:    true,
	PlanStarter: true,
	PlanPro:     true,
}

// PlanLimits holds the static per-plan limits.
type PlanLimits struct {
	MaxProducts        int
	MaxImagesPerBucket int
	MaxStaffAccounts   int
	CustomDomain       bool
}

var planLimits = map[PlanName]PlanLimits{
	PlanFree:    {MaxProducts: 10, MaxImagesPerBucket: 3, MaxStaffAccounts: 1, CustomDomain: false},
	PlanStarter: {MaxProducts: 100, MaxImagesPerBucket: 6, MaxStaffAccounts: 3, CustomDomain: false},
	PlanPro:     {MaxProducts: 2500, MaxImagesPerBucket: 12, MaxStaffAccounts: 10, CustomDomain: true},
}

// LimitsFor returns the limits for a plan, defaulting to the free plan for
// unknown names.
func LimitsFor(p PlanName) PlanLimits {
	if l, ok := planLimits[p]; ok {
		return l
	}
	return planLimits[PlanFree]
}
