package gameservice

import "goalbet/internal/domain"

// decideOutcome resolves a wager against the rigging rule set. The first
// active rule for the wager's currency that matches the side and amount
// forces the result; otherwise the result is a fair coin flip on rng.
func decideOutcome(controls domain.Controls, choice domain.BetChoice, amount float64, currency domain.Currency, rng func() float64) (result domain.BetChoice, controlled bool) {
	if controls.Enabled {
		for _, rule := range controls.Rules {
			if !rule.Active || rule.Currency != currency {
				continue
			}
			if !rule.Matches(choice, amount) {
				continue
			}
			if rule.Action == domain.ActionLose {
				return choice.Opposite(), true
			}
			return choice, true
		}
	}
	if rng() < 0.5 {
		return domain.BetGoal, false
	}
	return domain.BetNoGoal, false
}

// pickVideo selects a random presentation clip matching the result, or nil
// when the pool for that result is empty.
func pickVideo(pool domain.VideoPool, result domain.BetChoice, rng func() float64) *domain.Video {
	candidates := pool.ByResult(result)
	if len(candidates) == 0 {
		return nil
	}
	v := candidates[int(rng()*float64(len(candidates)))%len(candidates)]
	return &v
}
