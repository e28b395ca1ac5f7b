// Package captable computes ownership, dilution and exit payouts from the
// stored founders, funding rounds, ESOP grants and company settings.
package captable

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/wolfeidau/valuesim/internal/models"
)

// ErrNoShares is returned when a table cannot be built because nothing has
// been issued yet.
var ErrNoShares = errors.New("no shares outstanding")

// Holder classes.
const (
	ClassFounder  = "founder"
	ClassInvestor = "investor"
	ClassESOP     = "esop"
	ClassSAFE     = "safe"
)

// UnallocatedPool is the holder name of the ungranted part of the ESOP pool.
const UnallocatedPool = "ESOP pool (unallocated)"

// Holding is one line of the cap table.
type Holding struct {
	Name       string  `json:"name"`
	Class      string  `json:"class"`
	Shares     int64   `json:"shares"`
	Percentage float64 `json:"percentage"`
}

// RoundSummary describes the effect of a single funding round.
type RoundSummary struct {
	Name            string  `json:"name"`
	RoundType       string  `json:"round_type"`
	PreMoney        float64 `json:"pre_money"`
	PostMoney       float64 `json:"post_money"`
	PricePerShare   float64 `json:"price_per_share"`
	SharesBefore    int64   `json:"shares_before"`
	SharesIssued    int64   `json:"shares_issued"`
	ConvertedShares int64   `json:"converted_shares"`
	SharesAfter     int64   `json:"shares_after"`
	Dilution        float64 `json:"dilution"` // percent of pre-round holders diluted
}

// PendingConversion is a SAFE or note that has not met a priced round yet.
type PendingConversion struct {
	Name         string  `json:"name"`
	RoundType    string  `json:"round_type"`
	Amount       float64 `json:"amount"`
	ValuationCap float64 `json:"valuation_cap"`
	DiscountRate float64 `json:"discount_rate"`
}

// Table is a fully diluted capitalization table.
type Table struct {
	Holders            []Holding           `json:"holders"`
	TotalShares        int64               `json:"total_shares"`
	PostMoney          float64             `json:"post_money"`
	PricePerShare      float64             `json:"price_per_share"`
	Rounds             []RoundSummary      `json:"rounds"`
	PendingConversions []PendingConversion `json:"pending_conversions"`
}

// builder accumulates holdings while rounds are applied in order.
type builder struct {
	holders []Holding
	total   int64
}

func (b *builder) add(name, class string, shares int64) {
	if shares <= 0 {
		return
	}
	b.holders = append(b.holders, Holding{Name: name, Class: class, Shares: shares})
	b.total += shares
}

// Build computes the cap table. Inactive records are ignored. Rounds are
// applied in order_number order, then by round date.
func Build(settings *models.CompanySettings, founders []*models.Founder, rounds []*models.FundingRound, grants []*models.EsopGrant) (*Table, error) {
	if settings == nil {
		return nil, errors.New("settings are required")
	}

	b := &builder{}
	for _, f := range founders {
		if !f.Active {
			continue
		}
		shares := f.Shares
		if shares == 0 && settings.TotalShares > 0 {
			shares = roundShares(f.EquityPercentage / 100 * float64(settings.TotalShares))
		}
		b.add(f.Name, ClassFounder, shares)
	}

	addPool(b, settings.EsopPoolPercentage, grants)

	table := &Table{
		Rounds:             []RoundSummary{},
		PendingConversions: []PendingConversion{},
		PostMoney:          settings.CurrentValuation,
	}

	var pending []*models.FundingRound
	for _, r := range orderedRounds(rounds) {
		if r.IsConvertible() {
			pending = append(pending, r)
			table.Rounds = append(table.Rounds, RoundSummary{
				Name:         r.Name,
				RoundType:    r.RoundType,
				PreMoney:     r.Valuation,
				PostMoney:    r.PostMoney(),
				SharesBefore: b.total,
				SharesAfter:  b.total,
			})
			table.PostMoney = r.PostMoney()
			continue
		}

		summary, err := applyPricedRound(b, r, pending)
		if err != nil {
			return nil, err
		}
		pending = nil
		table.Rounds = append(table.Rounds, summary)
		table.PostMoney = summary.PostMoney
		table.PricePerShare = summary.PricePerShare
	}

	for _, p := range pending {
		table.PendingConversions = append(table.PendingConversions, PendingConversion{
			Name:         p.Name,
			RoundType:    p.RoundType,
			Amount:       p.CapitalRaised,
			ValuationCap: p.ValuationCap,
			DiscountRate: p.DiscountRate,
		})
	}

	if b.total == 0 {
		return nil, ErrNoShares
	}

	table.TotalShares = b.total
	table.Holders = b.holders
	for i := range table.Holders {
		table.Holders[i].Percentage = percent(table.Holders[i].Shares, b.total)
	}
	if table.PricePerShare == 0 && table.PostMoney > 0 {
		table.PricePerShare = table.PostMoney / float64(b.total)
	}

	return table, nil
}

// addPool reserves the ESOP pool as a percentage of founders plus pool, and
// splits it into granted and unallocated holdings. Grants in excess of the
// pool grow it.
func addPool(b *builder, poolPct float64, grants []*models.EsopGrant) {
	var pool int64
	if poolPct > 0 && poolPct < 100 {
		pool = roundShares(float64(b.total) * poolPct / (100 - poolPct))
	}

	var granted int64
	for _, g := range grants {
		if !g.Active || g.Status == models.GrantStatusCancelled {
			continue
		}
		b.add(g.EmployeeName, ClassESOP, g.SharesGranted)
		granted += g.SharesGranted
	}

	if pool > granted {
		b.add(UnallocatedPool, ClassESOP, pool-granted)
	}
}

// applyPricedRound converts pending instruments at the round price and then
// issues the round's new shares.
func applyPricedRound(b *builder, r *models.FundingRound, pending []*models.FundingRound) (RoundSummary, error) {
	before := b.total

	price := r.SharePrice
	if price <= 0 && r.SharesIssued > 0 {
		price = r.CapitalRaised / float64(r.SharesIssued)
	}
	if price <= 0 {
		if before == 0 {
			return RoundSummary{}, fmt.Errorf("round %q cannot be priced: %w", r.Name, ErrNoShares)
		}
		price = r.Valuation / float64(before)
	}
	if price <= 0 {
		return RoundSummary{}, fmt.Errorf("round %q has no valuation to price shares", r.Name)
	}

	var converted int64
	for _, p := range pending {
		shares := roundShares(p.CapitalRaised / conversionPrice(p, price, before))
		b.add(p.Name+" (converted)", ClassSAFE, shares)
		converted += shares
	}

	issued := r.SharesIssued
	if issued <= 0 {
		issued = roundShares(r.CapitalRaised / price)
	}
	b.add(r.Name, ClassInvestor, issued)

	return RoundSummary{
		Name:            r.Name,
		RoundType:       r.RoundType,
		PreMoney:        r.Valuation,
		PostMoney:       r.PostMoney(),
		PricePerShare:   price,
		SharesBefore:    before,
		SharesIssued:    issued,
		ConvertedShares: converted,
		SharesAfter:     b.total,
		Dilution:        dilution(before, b.total),
	}, nil
}

// conversionPrice is the lower of the cap price and the discounted round
// price. A zero cap or discount is ignored.
func conversionPrice(p *models.FundingRound, roundPrice float64, preMoneyShares int64) float64 {
	conv := roundPrice
	if p.ValuationCap > 0 && preMoneyShares > 0 {
		conv = math.Min(conv, p.ValuationCap/float64(preMoneyShares))
	}
	if p.DiscountRate > 0 {
		conv = math.Min(conv, roundPrice*(1-p.DiscountRate/100))
	}
	return conv
}

func orderedRounds(rounds []*models.FundingRound) []*models.FundingRound {
	out := make([]*models.FundingRound, 0, len(rounds))
	for _, r := range rounds {
		if r.Active {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderNumber != out[j].OrderNumber {
			return out[i].OrderNumber < out[j].OrderNumber
		}
		return out[i].RoundDate.Before(out[j].RoundDate)
	})
	return out
}

func roundShares(v float64) int64 {
	return int64(math.Round(v))
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func dilution(before, after int64) float64 {
	if after == 0 {
		return 0
	}
	return (1 - float64(before)/float64(after)) * 100
}
