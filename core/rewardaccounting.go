package core

import (
	"github.com/shopspring/decimal"
)

// WinnerReward computes the winning agent's reward: valuation minus bid.
// Uses decimal arithmetic to avoid floating-point drift, so reference
// traces like 5.94 - 8.0 = -2.06 hold exactly. Negative rewards
// (overbidding) are intentional and never clamped to zero.
func WinnerReward(valuation, bid float64) float64 {
	valuationDecimal := decimal.NewFromFloat(valuation)
	bidDecimal := decimal.NewFromFloat(bid)

	reward, _ := valuationDecimal.Sub(bidDecimal).Float64()
	return reward
}

// AccumulateUtility adds a round reward onto a running utility total
// using decimal arithmetic.
func AccumulateUtility(total, reward float64) float64 {
	totalDecimal := decimal.NewFromFloat(total)
	rewardDecimal := decimal.NewFromFloat(reward)

	result, _ := totalDecimal.Add(rewardDecimal).Float64()
	return result
}
