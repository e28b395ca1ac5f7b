package captable

// Payout is a holder's share of an exit.
type Payout struct {
	Name       string  `json:"name"`
	Class      string  `json:"class"`
	Shares     int64   `json:"shares"`
	Percentage float64 `json:"percentage"`
	Value      float64 `json:"value"`
}

// ExitWaterfall splits an exit valuation pro rata across all holders.
// Liquidation preferences are not modelled.
func ExitWaterfall(t *Table, exitValuation float64) []Payout {
	payouts := make([]Payout, 0, len(t.Holders))
	if t.TotalShares == 0 {
		return payouts
	}
	for _, h := range t.Holders {
		payouts = append(payouts, Payout{
			Name:       h.Name,
			Class:      h.Class,
			Shares:     h.Shares,
			Percentage: h.Percentage,
			Value:      exitValuation * float64(h.Shares) / float64(t.TotalShares),
		})
	}
	return payouts
}

// ValueByClass sums payouts per holder class.
func ValueByClass(payouts []Payout) map[string]float64 {
	out := make(map[string]float64)
	for _, p := range payouts {
		out[p.Class] += p.Value
	}
	return out
}
