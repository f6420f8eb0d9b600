// Package gameservice implements the wager round: outcome resolution
// against the rigging rule set, the full ledger mutation for a round and
// the VIP tier recomputation that follows it.
package gameservice

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goalbet/internal/apperr"
	"goalbet/internal/config"
	"goalbet/internal/domain"
	ledgerrepo "goalbet/internal/repo/ledger-repo"
)

type LedgerRepo interface {
	Users(ctx context.Context) ([]domain.User, error)
	MutateUsers(ctx context.Context, fn func(users []domain.User) ([]domain.User, error)) error
}

type GameRepo interface {
	Controls(ctx context.Context) (domain.Controls, error)
	Videos(ctx context.Context) (domain.VideoPool, error)
}

type Service struct {
	ledger LedgerRepo
	games  GameRepo
	rng    func() float64
	now    func() time.Time
}

func New(ledger LedgerRepo, games GameRepo) *Service {
	return &Service{
		ledger: ledger,
		games:  games,
		rng:    rand.Float64,
		now:    time.Now,
	}
}

// historyLimit caps the per-user game history; oldest entries are evicted.
const historyLimit = 100

type PlayResult struct {
	Game       domain.GameRecord
	Video      *domain.Video
	NewBalance float64
	Balances   domain.Amounts
	VipLevel   domain.VipLevel
	KingReward *domain.Amounts
	Message    string
}

// Play runs one wager round for the user. The whole ledger update (debit,
// payout, counters, claim-lock release, tier recompute, history) is applied
// in a single users mutation so a failed write leaves no trace.
func (s *Service) Play(ctx context.Context, userID string, choice domain.BetChoice, amount float64, currency domain.Currency) (*PlayResult, error) {
	if !choice.Valid() {
		return nil, apperr.Validationf(`Invalid bet choice. Must be "goal" or "nogoal"`)
	}
	if !currency.Valid() {
		return nil, apperr.Validationf("Invalid currency")
	}
	limits := config.LimitsFor(currency)
	if amount < limits.BetMin {
		return nil, apperr.Validationf("Minimum bet is %v %s", limits.BetMin, currency)
	}
	if amount > limits.BetMax {
		return nil, apperr.Validationf("Maximum bet is %v %s", limits.BetMax, currency)
	}

	controls, err := s.games.Controls(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := s.games.Videos(ctx)
	if err != nil {
		return nil, err
	}

	var out PlayResult
	err = s.ledger.MutateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := ledgerrepo.UserIndex(users, userID)
		if idx == -1 {
			return nil, apperr.NotFoundf("User not found")
		}
		u := &users[idx]
		if u.Banned() {
			return nil, apperr.Bannedf("Account is banned")
		}
		if u.Balance.Get(currency) < amount {
			return nil, apperr.InsufficientFundsf("Insufficient %s balance. You have %v %s", currency, u.Balance.Get(currency), currency)
		}

		result, controlled := decideOutcome(controls, choice, amount, currency, s.rng)
		video := pickVideo(videos, result, s.rng)

		won := choice == result
		winAmount := 0.0
		profitLoss := -amount
		if won {
			winAmount = amount * 2
			profitLoss = amount
		}

		now := s.now()
		u.Balance.Sub(currency, amount)
		if won {
			u.Balance.Add(currency, winAmount)
			u.TotalWinnings.Add(currency, amount)
			u.TotalGamesWon++
		} else {
			u.TotalLosses.Add(currency, amount)
			u.TotalGamesLost++
		}
		u.TotalTurnover.Add(currency, amount*config.TurnoverMultiplier)
		u.TotalGamesPlayed++

		// A qualifying wager releases the claim-reward withdrawal lock.
		if u.PendingClaimBet != nil && u.PendingClaimBet.Currency == currency && amount >= u.PendingClaimBet.MinBet {
			u.PendingClaimBet = nil
		}

		previousLevel := u.VipLevel
		newLevel := config.VipLevelFor(u.TotalWinnings)
		u.VvipCurrencies = config.VvipFlagsFor(u.TotalWinnings)
		u.VipLevel = newLevel

		if newLevel == domain.VVIPKing && previousLevel != domain.VVIPKing {
			out.KingReward = &domain.Amounts{
				MMK: config.ClaimReward(domain.MMK),
				USD: config.ClaimReward(domain.USD),
				CNY: config.ClaimReward(domain.CNY),
			}
		}

		record := domain.GameRecord{
			ID:         uuid.NewString(),
			BetChoice:  choice,
			BetAmount:  amount,
			Currency:   currency,
			Result:     result,
			Won:        won,
			WinAmount:  winAmount,
			ProfitLoss: profitLoss,
			Controlled: controlled,
			Timestamp:  now,
		}
		if video != nil {
			record.VideoID = video.ID
		}

		u.GameHistory = append([]domain.GameRecord{record}, u.GameHistory...)
		if len(u.GameHistory) > historyLimit {
			u.GameHistory = u.GameHistory[:historyLimit]
		}
		u.UpdatedAt = now

		out.Game = record
		out.Video = video
		out.NewBalance = u.Balance.Get(currency)
		out.Balances = u.Balance
		out.VipLevel = newLevel
		if won {
			out.Message = fmt.Sprintf("You won %v %s!", winAmount, currency)
		} else {
			out.Message = fmt.Sprintf("You lost %v %s", amount, currency)
		}
		return users, nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("wager settled",
		zap.String("userID", userID),
		zap.String("currency", string(currency)),
		zap.Float64("amount", amount),
		zap.Bool("won", out.Game.Won),
		zap.Bool("controlled", out.Game.Controlled))
	return &out, nil
}

// Videos returns the full presentation pool for client preloading.
func (s *Service) Videos(ctx context.Context) (domain.VideoPool, error) {
	return s.games.Videos(ctx)
}

type HistoryStats struct {
	TotalPlayed int
	TotalWon    int
	TotalLost   int
	Winnings    domain.Amounts
	Losses      domain.Amounts
}

func (s *Service) History(ctx context.Context, userID string) ([]domain.GameRecord, *HistoryStats, error) {
	users, err := s.ledger.Users(ctx)
	if err != nil {
		return nil, nil, err
	}
	idx := ledgerrepo.UserIndex(users, userID)
	if idx == -1 {
		return nil, nil, apperr.NotFoundf("User not found")
	}
	u := users[idx]
	history := u.GameHistory
	if history == nil {
		history = []domain.GameRecord{}
	}
	return history, &HistoryStats{
		TotalPlayed: u.TotalGamesPlayed,
		TotalWon:    u.TotalGamesWon,
		TotalLost:   u.TotalGamesLost,
		Winnings:    u.TotalWinnings,
		Losses:      u.TotalLosses,
	}, nil
}
