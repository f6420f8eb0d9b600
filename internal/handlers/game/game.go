package game

import (
	"context"
	"encoding/json"
	"net/http"

	"goalbet/internal/apperr"
	"goalbet/internal/domain"
	"goalbet/internal/dto"
	"goalbet/internal/service/gameservice"
	pkgauth "goalbet/pkg/auth"
	"goalbet/pkg/utils"
)

type Service interface {
	Play(ctx context.Context, userID string, choice domain.BetChoice, amount float64, currency domain.Currency) (*gameservice.PlayResult, error)
	Videos(ctx context.Context) (domain.VideoPool, error)
	History(ctx context.Context, userID string) ([]domain.GameRecord, *gameservice.HistoryStats, error)
}

type GameHandler struct {
	gameService Service
}

func New(gameService Service) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func sessionUserID(r *http.Request) string {
	id, _ := r.Context().Value(pkgauth.UserIDKey).(string)
	return id
}

// Play godoc
//
//	@Summary		Place a wager
//	@Description	Settle one goal/no-goal round and return the result video
//	@Tags			Game
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PlayRequestDTO	true	"Wager"
//	@Success		200		{object}	dto.PlayResponseDTO
//	@Failure		400		{object}	utils.Response	"Validation failed or insufficient balance"
//	@Failure		403		{object}	utils.Response	"Account banned"
//	@Router			/api/game/play [post]
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	var req dto.PlayRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.gameService.Play(r.Context(), sessionUserID(r),
		domain.BetChoice(req.BetChoice), req.BetAmount, domain.Currency(req.Currency))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PlayResponseDTO{
		Success:    true,
		Game:       &res.Game,
		Video:      res.Video,
		NewBalance: res.NewBalance,
		Balances:   res.Balances,
		VipLevel:   res.VipLevel,
		KingReward: res.KingReward,
		Message:    res.Message,
	})
}

// Videos godoc
//
//	@Summary	List result videos
//	@Tags		Game
//	@Produce	json
//	@Success	200	{object}	dto.VideosResponseDTO
//	@Router		/api/game/videos [get]
func (h *GameHandler) Videos(w http.ResponseWriter, r *http.Request) {
	pool, err := h.gameService.Videos(r.Context())
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.VideosResponseDTO{Success: true, Videos: pool})
}

// History godoc
//
//	@Summary	Get the session user's game history with aggregates
//	@Tags		Game
//	@Produce	json
//	@Success	200	{object}	dto.GameHistoryResponseDTO
//	@Failure	404	{object}	utils.Response	"User not found"
//	@Router		/api/game/history [get]
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	games, stats, err := h.gameService.History(r.Context(), sessionUserID(r))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.GameHistoryResponseDTO{
		Success: true,
		Games:   games,
		Stats: dto.GameStatsDTO{
			TotalPlayed: stats.TotalPlayed,
			TotalWon:    stats.TotalWon,
			TotalLost:   stats.TotalLost,
			Winnings:    stats.Winnings,
			Losses:      stats.Losses,
		},
	})
}
