package payments

import (
	"context"
	"encoding/json"
	"net/http"

	"goalbet/internal/apperr"
	"goalbet/internal/domain"
	"goalbet/internal/dto"
	"goalbet/internal/service/paymentservice"
	pkgauth "goalbet/pkg/auth"
	"goalbet/pkg/utils"
)

type Service interface {
	Deposit(ctx context.Context, userID string, amount float64, currency domain.Currency, paymentMethodID, transactionID string) (*domain.Deposit, error)
	Withdraw(ctx context.Context, userID string, amount float64, currency domain.Currency) (*domain.Withdrawal, float64, error)
	DepositHistory(ctx context.Context, userID string) ([]domain.Deposit, error)
	WithdrawHistory(ctx context.Context, userID string) ([]domain.Withdrawal, error)
	PaymentMethods(ctx context.Context, currency domain.Currency) (domain.PaymentPool, []domain.PaymentMethod, error)
	CheckWithdrawEligibility(ctx context.Context, userID string, currency domain.Currency) (*paymentservice.Eligibility, error)
	ClaimReward(ctx context.Context, userID string, currency domain.Currency) (*paymentservice.ClaimResult, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func sessionUserID(r *http.Request) string {
	id, _ := r.Context().Value(pkgauth.UserIDKey).(string)
	return id
}

// Deposit godoc
//
//	@Summary		Submit a deposit request
//	@Description	File a deposit attestation for manual approval
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DepositRequestDTO	true	"Deposit request"
//	@Success		200		{object}	dto.DepositResponseDTO
//	@Failure		400		{object}	utils.Response	"Validation failed"
//	@Failure		403		{object}	utils.Response	"Account banned or fraud detected"
//	@Failure		409		{object}	utils.Response	"Duplicate pending transaction"
//	@Router			/api/payments/deposit [post]
func (h *PaymentHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	deposit, err := h.paymentService.Deposit(r.Context(), sessionUserID(r),
		req.Amount, domain.Currency(req.Currency), req.PaymentMethodID, req.TransactionID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DepositResponseDTO{
		Success: true,
		Deposit: deposit,
		Message: "Deposit request submitted. Waiting for approval.",
	})
}

// Withdraw godoc
//
//	@Summary		Submit a withdrawal request
//	@Description	Debit the balance immediately and queue the request for approval
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request"
//	@Success		200		{object}	dto.WithdrawResponseDTO
//	@Failure		400		{object}	utils.Response	"Validation failed or insufficient balance"
//	@Failure		403		{object}	utils.Response	"Account banned"
//	@Failure		409		{object}	utils.Response	"Claim lock active"
//	@Router			/api/payments/withdraw [post]
func (h *PaymentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	withdrawal, newBalance, err := h.paymentService.Withdraw(r.Context(), sessionUserID(r),
		req.Amount, domain.Currency(req.Currency))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawResponseDTO{
		Success:    true,
		Withdrawal: withdrawal,
		NewBalance: newBalance,
		Message:    "Withdrawal request submitted. Waiting for approval.",
	})
}

// DepositHistory godoc
//
//	@Summary	List the session user's deposit requests
//	@Tags		Payments
//	@Produce	json
//	@Success	200	{object}	dto.DepositHistoryResponseDTO
//	@Router		/api/payments/deposit-history [get]
func (h *PaymentHandler) DepositHistory(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.paymentService.DepositHistory(r.Context(), sessionUserID(r))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DepositHistoryResponseDTO{Success: true, Deposits: deposits})
}

// WithdrawHistory godoc
//
//	@Summary	List the session user's withdrawal requests
//	@Tags		Payments
//	@Produce	json
//	@Success	200	{object}	dto.WithdrawHistoryResponseDTO
//	@Router		/api/payments/withdraw-history [get]
func (h *PaymentHandler) WithdrawHistory(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.paymentService.WithdrawHistory(r.Context(), sessionUserID(r))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawHistoryResponseDTO{Success: true, Withdrawals: withdrawals})
}

// PaymentMethods godoc
//
//	@Summary	List active payment methods
//	@Tags		Payments
//	@Produce	json
//	@Param		currency	query		string	false	"Limit to one currency"
//	@Success	200			{object}	dto.PaymentMethodsResponseDTO
//	@Router		/api/payments/methods [get]
func (h *PaymentHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	currency := domain.Currency(r.URL.Query().Get("currency"))
	pool, methods, err := h.paymentService.PaymentMethods(r.Context(), currency)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentMethodsResponseDTO{
		Success:  true,
		Payments: pool,
		Methods:  methods,
	})
}

// Eligibility godoc
//
//	@Summary	Check withdrawal preconditions for a currency
//	@Tags		Payments
//	@Produce	json
//	@Param		currency	query		string	true	"Currency code"
//	@Success	200			{object}	dto.EligibilityResponseDTO
//	@Failure	400			{object}	utils.Response	"Invalid currency"
//	@Router		/api/payments/withdraw-eligibility [get]
func (h *PaymentHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	currency := domain.Currency(r.URL.Query().Get("currency"))
	e, err := h.paymentService.CheckWithdrawEligibility(r.Context(), sessionUserID(r), currency)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.EligibilityResponseDTO{
		Success:  true,
		Eligible: e.Eligible,
		Turnover: dto.TurnoverDTO{
			Met:       e.Turnover.Met,
			Required:  e.Turnover.Required,
			Current:   e.Turnover.Current,
			Remaining: e.Turnover.Remaining,
		},
		VipLevel:           e.VipLevel,
		DailyLimit:         e.DailyLimit,
		TodayCount:         e.TodayCount,
		RemainingWithdraws: e.RemainingWithdraws,
		HasPendingClaim:    e.HasPendingClaim,
		PendingClaimBet:    e.PendingClaimBet,
		Balance:            e.Balance,
		Limits:             e.Limits,
	})
}

// ClaimReward godoc
//
//	@Summary		Claim the one-time VVIP KING reward
//	@Description	Credit the reward and arm the qualifying-wager withdrawal lock
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ClaimRewardRequestDTO	true	"Reward currency"
//	@Success		200		{object}	dto.ClaimRewardResponseDTO
//	@Failure		400		{object}	utils.Response	"Not eligible"
//	@Failure		409		{object}	utils.Response	"Already claimed"
//	@Router			/api/payments/claim-reward [post]
func (h *PaymentHandler) ClaimReward(w http.ResponseWriter, r *http.Request) {
	var req dto.ClaimRewardRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.paymentService.ClaimReward(r.Context(), sessionUserID(r), domain.Currency(req.Currency))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ClaimRewardResponseDTO{
		Success:    true,
		Amount:     res.PendingClaimBet.RewardAmount,
		NewBalance: res.NewBalance,
		ClaimLock:  res.PendingClaimBet,
		Message:    res.Message,
	})
}
