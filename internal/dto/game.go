package dto

import "goalbet/internal/domain"

type PlayRequestDTO struct {
	BetChoice string  `json:"betChoice" example:"goal"`
	BetAmount float64 `json:"betAmount" example:"5000"`
	Currency  string  `json:"currency" example:"MMK"`
}

type PlayResponseDTO struct {
	Success    bool               `json:"success"`
	Game       *domain.GameRecord `json:"game"`
	Video      *domain.Video      `json:"video,omitempty"`
	NewBalance float64            `json:"newBalance"`
	Balances   domain.Amounts     `json:"balances"`
	VipLevel   domain.VipLevel    `json:"vipLevel"`
	KingReward *domain.Amounts    `json:"vvipKingReward,omitempty"`
	Message    string             `json:"message"`
}

type VideosResponseDTO struct {
	Success bool             `json:"success"`
	Videos  domain.VideoPool `json:"videos"`
}

type GameStatsDTO struct {
	TotalPlayed int            `json:"totalGamesPlayed"`
	TotalWon    int            `json:"totalGamesWon"`
	TotalLost   int            `json:"totalGamesLost"`
	Winnings    domain.Amounts `json:"totalWinnings"`
	Losses      domain.Amounts `json:"totalLosses"`
}

type GameHistoryResponseDTO struct {
	Success bool                `json:"success"`
	Games   []domain.GameRecord `json:"games"`
	Stats   GameStatsDTO        `json:"stats"`
}
