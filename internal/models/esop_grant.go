package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Vesting frequencies.
const (
	VestingMonthly   = "monthly"
	VestingQuarterly = "quarterly"
	VestingAnnually  = "annually"
)

// Grant statuses.
const (
	GrantStatusActive     = "active"
	GrantStatusTerminated = "terminated"
	GrantStatusExercised  = "exercised"
	GrantStatusCancelled  = "cancelled"
)

// EsopGrant is an option grant made to an employee out of the ESOP pool.
type EsopGrant struct {
	ID               uuid.UUID `json:"id"`
	CompanyID        uuid.UUID `json:"company_id"`
	EmployeeName     string    `json:"employee_name"`
	EmployeeID       string    `json:"employee_id"`
	Position         string    `json:"position"`
	Department       string    `json:"department"`
	GrantDate        time.Time `json:"grant_date"`
	SharesGranted    int64     `json:"shares_granted"`
	VestingSchedule  string    `json:"vesting_schedule"` // Display label, e.g. "4 years"
	VestingMonths    int       `json:"vesting_months"`
	CliffMonths      int       `json:"cliff_period"`
	VestingFrequency string    `json:"vesting_frequency"`
	ExercisePrice    float64   `json:"exercise_price"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FrequencyMonths returns the vesting period length in months.
// Unknown frequencies vest monthly.
func (g *EsopGrant) FrequencyMonths() int {
	switch g.VestingFrequency {
	case VestingQuarterly:
		return 3
	case VestingAnnually:
		return 12
	default:
		return 1
	}
}

// ApplyGrantDefaults fills the fields a grant may be created without.
func ApplyGrantDefaults(g *EsopGrant) {
	if g.VestingMonths == 0 {
		g.VestingMonths = 48
	}
	if g.VestingFrequency == "" {
		g.VestingFrequency = VestingMonthly
	}
	if g.Status == "" {
		g.Status = GrantStatusActive
	}
	if g.VestingSchedule == "" {
		g.VestingSchedule = fmt.Sprintf("%d months", g.VestingMonths)
	}
}
