package captable

import (
	"time"

	"github.com/wolfeidau/valuesim/internal/models"
)

// DefaultVestingMonths applies to grants that do not record a vesting length.
const DefaultVestingMonths = 48

// Vesting is the vesting position of a grant at a point in time.
type Vesting struct {
	GrantID         string    `json:"grant_id"`
	AsOf            time.Time `json:"as_of"`
	Granted         int64     `json:"granted"`
	Vested          int64     `json:"vested"`
	Unvested        int64     `json:"unvested"`
	CliffDate       time.Time `json:"cliff_date"`
	FullyVestedDate time.Time `json:"fully_vested_date"`
}

// VestingStatus returns the vesting position of g at asOf.
func VestingStatus(g *models.EsopGrant, asOf time.Time) Vesting {
	months := vestingMonths(g)
	vested := VestedShares(g, asOf)
	return Vesting{
		GrantID:         g.ID.String(),
		AsOf:            asOf,
		Granted:         g.SharesGranted,
		Vested:          vested,
		Unvested:        g.SharesGranted - vested,
		CliffDate:       g.GrantDate.AddDate(0, g.CliffMonths, 0),
		FullyVestedDate: g.GrantDate.AddDate(0, months, 0),
	}
}

// VestedShares returns the number of shares of g vested at asOf.
//
// Nothing vests before the cliff. At the cliff the whole elapsed cliff period
// vests at once; afterwards shares vest at the end of each frequency period
// until the grant is fully vested. Cancelled grants vest nothing and
// terminated grants stop vesting at their last update.
func VestedShares(g *models.EsopGrant, asOf time.Time) int64 {
	if !g.Active || g.Status == models.GrantStatusCancelled || g.SharesGranted <= 0 {
		return 0
	}
	if g.Status == models.GrantStatusTerminated && !g.UpdatedAt.IsZero() && g.UpdatedAt.Before(asOf) {
		asOf = g.UpdatedAt
	}

	total := vestingMonths(g)
	elapsed := monthsBetween(g.GrantDate, asOf)
	if elapsed < g.CliffMonths || elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return g.SharesGranted
	}

	freq := g.FrequencyMonths()
	vestedMonths := (elapsed / freq) * freq
	if vestedMonths < g.CliffMonths {
		vestedMonths = g.CliffMonths
	}

	return g.SharesGranted * int64(vestedMonths) / int64(total)
}

func vestingMonths(g *models.EsopGrant) int {
	if g.VestingMonths > 0 {
		return g.VestingMonths
	}
	return DefaultVestingMonths
}

// monthsBetween counts whole calendar months from start to end.
func monthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return months
}
