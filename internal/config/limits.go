package config

import "goalbet/internal/domain"

// Limits is the fixed per-currency bounds table for money movement.
type Limits struct {
	DepositMin  float64
	DepositMax  float64
	WithdrawMin float64
	WithdrawMax float64
	BetMin      float64
	BetMax      float64
}

var limitsByCurrency = map[domain.Currency]Limits{
	domain.MMK: {DepositMin: 10000, DepositMax: 1000000, WithdrawMin: 10000, WithdrawMax: 1000000, BetMin: 1000, BetMax: 24681098},
	domain.USD: {DepositMin: 10, DepositMax: 10000, WithdrawMin: 10, WithdrawMax: 10000, BetMin: 1, BetMax: 28038},
	domain.CNY: {DepositMin: 50, DepositMax: 10000, WithdrawMin: 100, WithdrawMax: 100000, BetMin: 5, BetMax: 2890300},
}

func LimitsFor(c domain.Currency) Limits {
	return limitsByCurrency[c]
}

// Cumulative winnings needed in a currency to count toward VVIP status.
var vvipRequirements = map[domain.Currency]float64{
	domain.MMK: 1000000,
	domain.USD: 1000,
	domain.CNY: 2000,
}

func VvipRequirement(c domain.Currency) float64 {
	return vvipRequirements[c]
}

// VipLevelFor derives the tier from cumulative net winnings: all three
// currencies over their requirement is VVIP_KING, any one is VVIP.
func VipLevelFor(winnings domain.Amounts) domain.VipLevel {
	met := 0
	for _, c := range domain.Currencies() {
		if winnings.Get(c) >= vvipRequirements[c] {
			met++
		}
	}
	switch {
	case met == len(domain.Currencies()):
		return domain.VVIPKing
	case met > 0:
		return domain.VVIP
	default:
		return domain.VIP
	}
}

// VvipFlagsFor reports which currencies currently meet their requirement.
func VvipFlagsFor(winnings domain.Amounts) domain.Flags {
	var flags domain.Flags
	for _, c := range domain.Currencies() {
		flags.Set(c, winnings.Get(c) >= vvipRequirements[c])
	}
	return flags
}

// One-time VVIP_KING claim reward amounts and the follow-up minimum bet
// that unlocks withdrawals again.
var (
	claimRewards = map[domain.Currency]float64{
		domain.MMK: 1000000,
		domain.USD: 500,
		domain.CNY: 1000,
	}
	claimMinBets = map[domain.Currency]float64{
		domain.MMK: 100000,
		domain.USD: 100,
		domain.CNY: 200,
	}
)

func ClaimReward(c domain.Currency) float64 { return claimRewards[c] }
func ClaimMinBet(c domain.Currency) float64 { return claimMinBets[c] }

// Daily withdrawal count limits per tier.
const (
	VipWithdrawLimit      = 5
	VvipWithdrawLimit     = 10
	VvipKingWithdrawLimit = 999999
)

func WithdrawLimitFor(level domain.VipLevel) int {
	switch level {
	case domain.VVIPKing:
		return VvipKingWithdrawLimit
	case domain.VVIP:
		return VvipWithdrawLimit
	default:
		return VipWithdrawLimit
	}
}

// Withdrawal turnover gate and deposit-fraud escalation parameters.
const (
	TurnoverMultiplier = 1.0
	BanThreshold       = 3
	BanWindowHours     = 24
)
