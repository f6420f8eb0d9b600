package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"goalbet/internal/apperr"
	"goalbet/internal/domain"
	"goalbet/internal/dto"
	"goalbet/internal/service/adminservice"
	"goalbet/pkg/utils"
)

type Service interface {
	ApproveDeposit(ctx context.Context, depositID string) (*domain.Deposit, error)
	RejectDeposit(ctx context.Context, depositID, reason string) (*domain.Deposit, error)
	ApproveWithdraw(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error)
	RejectWithdraw(ctx context.Context, withdrawalID, reason string) (*domain.Withdrawal, error)
	PendingDeposits(ctx context.Context) ([]domain.Deposit, error)
	PendingWithdrawals(ctx context.Context) ([]domain.Withdrawal, error)
	AllDeposits(ctx context.Context) ([]domain.Deposit, error)
	AllWithdrawals(ctx context.Context) ([]domain.Withdrawal, error)
	CreatePayment(ctx context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error)
	UpdatePayment(ctx context.Context, paymentID string, currency domain.Currency, patch adminservice.PaymentPatch) (*domain.PaymentMethod, error)
	DeletePayment(ctx context.Context, paymentID string, currency domain.Currency) error
	UploadVideo(ctx context.Context, videoType domain.BetChoice, url, name string) (*domain.Video, error)
	DeleteVideo(ctx context.Context, videoID string, videoType domain.BetChoice) error
	Controls(ctx context.Context) (domain.Controls, error)
	UpdateControls(ctx context.Context, controls domain.Controls) error
	AddControlRule(ctx context.Context, rule domain.ControlRule) (*domain.ControlRule, error)
	DeleteControlRule(ctx context.Context, ruleID string) error
	ToggleControls(ctx context.Context, enabled bool) (bool, error)
	BanUser(ctx context.Context, userID, reason string) (string, error)
	UnbanUser(ctx context.Context, userID string) (string, error)
	AdjustBalance(ctx context.Context, userID string, currency domain.Currency, amount float64, adjustType string) (domain.Amounts, error)
	SetVip(ctx context.Context, userID string, level domain.VipLevel) error
	CreateContact(ctx context.Context, contact domain.Contact) (*domain.Contact, error)
	UpdateContact(ctx context.Context, contactID string, patch adminservice.ContactPatch) (*domain.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error
	Contacts(ctx context.Context) ([]domain.Contact, error)
	BannedUsers(ctx context.Context) ([]adminservice.BannedUser, error)
	Stats(ctx context.Context) (*adminservice.Stats, error)
	Users(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, patch adminservice.UserPatch) (*domain.User, error)
}

type AdminHandler struct {
	adminService Service
}

func New(adminService Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func respondErr(w http.ResponseWriter, err error) {
	utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// ApproveDeposit godoc
//
//	@Summary	Approve a pending deposit and credit the user
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Deposit id"
//	@Success	200	{object}	dto.DecisionResponseDTO
//	@Failure	404	{object}	utils.Response	"Deposit not found"
//	@Failure	409	{object}	utils.Response	"Already processed"
//	@Router		/api/admin/deposits/{id}/approve [post]
func (h *AdminHandler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	deposit, err := h.adminService.ApproveDeposit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DecisionResponseDTO{Success: true, Deposit: deposit})
}

// RejectDeposit godoc
//
//	@Summary	Reject a pending deposit
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Deposit id"
//	@Param		request	body		dto.RejectRequestDTO	false	"Rejection reason"
//	@Success	200		{object}	dto.DecisionResponseDTO
//	@Router		/api/admin/deposits/{id}/reject [post]
func (h *AdminHandler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	var req dto.RejectRequestDTO
	if !decode(w, r, &req) {
		return
	}
	deposit, err := h.adminService.RejectDeposit(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DecisionResponseDTO{Success: true, Deposit: deposit})
}

// ApproveWithdraw godoc
//
//	@Summary	Approve a pending withdrawal
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Withdrawal id"
//	@Success	200	{object}	dto.DecisionResponseDTO
//	@Router		/api/admin/withdrawals/{id}/approve [post]
func (h *AdminHandler) ApproveWithdraw(w http.ResponseWriter, r *http.Request) {
	withdrawal, err := h.adminService.ApproveWithdraw(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DecisionResponseDTO{Success: true, Withdrawal: withdrawal})
}

// RejectWithdraw godoc
//
//	@Summary	Reject a pending withdrawal and refund the user
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Withdrawal id"
//	@Param		request	body		dto.RejectRequestDTO	false	"Rejection reason"
//	@Success	200		{object}	dto.DecisionResponseDTO
//	@Router		/api/admin/withdrawals/{id}/reject [post]
func (h *AdminHandler) RejectWithdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.RejectRequestDTO
	if !decode(w, r, &req) {
		return
	}
	withdrawal, err := h.adminService.RejectWithdraw(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DecisionResponseDTO{Success: true, Withdrawal: withdrawal})
}

// PendingDeposits godoc
//
//	@Summary	List pending deposits
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	dto.DepositHistoryResponseDTO
//	@Router		/api/admin/deposits/pending [get]
func (h *AdminHandler) PendingDeposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.adminService.PendingDeposits(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DepositHistoryResponseDTO{Success: true, Deposits: deposits})
}

// PendingWithdrawals godoc
//
//	@Summary	List pending withdrawals
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	dto.WithdrawHistoryResponseDTO
//	@Router		/api/admin/withdrawals/pending [get]
func (h *AdminHandler) PendingWithdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.adminService.PendingWithdrawals(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawHistoryResponseDTO{Success: true, Withdrawals: withdrawals})
}

// Deposits godoc
//
//	@Summary	List all deposit requests
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	dto.DepositHistoryResponseDTO
//	@Router		/api/admin/deposits [get]
func (h *AdminHandler) Deposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.adminService.AllDeposits(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DepositHistoryResponseDTO{Success: true, Deposits: deposits})
}

// Withdrawals godoc
//
//	@Summary	List all withdrawal requests
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	dto.WithdrawHistoryResponseDTO
//	@Router		/api/admin/withdrawals [get]
func (h *AdminHandler) Withdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.adminService.AllWithdrawals(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawHistoryResponseDTO{Success: true, Withdrawals: withdrawals})
}

// CreatePayment godoc
//
//	@Summary	Create a payment method
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CreatePaymentRequestDTO	true	"Payment method"
//	@Success	200		{object}	dto.PaymentResponseDTO
//	@Router		/api/admin/payments [post]
func (h *AdminHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequestDTO
	if !decode(w, r, &req) {
		return
	}
	payment, err := h.adminService.CreatePayment(r.Context(), domain.PaymentMethod{
		Currency:  domain.Currency(req.Currency),
		Name:      req.Name,
		Address:   req.Address,
		Note:      req.Note,
		IconURL:   req.IconURL,
		QRCodeURL: req.QRCodeURL,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentResponseDTO{Success: true, Payment: payment})
}

// UpdatePayment godoc
//
//	@Summary	Update a payment method
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Payment id"
//	@Param		request	body		dto.UpdatePaymentRequestDTO	true	"Fields to change"
//	@Success	200		{object}	dto.PaymentResponseDTO
//	@Router		/api/admin/payments/{id} [put]
func (h *AdminHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePaymentRequestDTO
	if !decode(w, r, &req) {
		return
	}
	payment, err := h.adminService.UpdatePayment(r.Context(), chi.URLParam(r, "id"),
		domain.Currency(req.Currency), adminservice.PaymentPatch{
			Name:      req.Name,
			Address:   req.Address,
			Note:      req.Note,
			IconURL:   req.IconURL,
			QRCodeURL: req.QRCodeURL,
			Active:    req.Active,
		})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PaymentResponseDTO{Success: true, Payment: payment})
}

// DeletePayment godoc
//
//	@Summary	Delete a payment method
//	@Tags		Admin
//	@Produce	json
//	@Param		id			path		string	true	"Payment id"
//	@Param		currency	query		string	true	"Currency code"
//	@Success	200			{object}	utils.Response
//	@Router		/api/admin/payments/{id} [delete]
func (h *AdminHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	err := h.adminService.DeletePayment(r.Context(), chi.URLParam(r, "id"),
		domain.Currency(r.URL.Query().Get("currency")))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// UploadVideo godoc
//
//	@Summary	Register a result video
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.UploadVideoRequestDTO	true	"Video"
//	@Success	200		{object}	dto.VideoResponseDTO
//	@Router		/api/admin/videos [post]
func (h *AdminHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadVideoRequestDTO
	if !decode(w, r, &req) {
		return
	}
	video, err := h.adminService.UploadVideo(r.Context(), domain.BetChoice(req.Type), req.URL, req.Name)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.VideoResponseDTO{Success: true, Video: video})
}

// DeleteVideo godoc
//
//	@Summary	Delete a result video
//	@Tags		Admin
//	@Produce	json
//	@Param		id		path		string	true	"Video id"
//	@Param		type	query		string	true	"Video type (goal or nogoal)"
//	@Success	200		{object}	utils.Response
//	@Router		/api/admin/videos/{id} [delete]
func (h *AdminHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	err := h.adminService.DeleteVideo(r.Context(), chi.URLParam(r, "id"),
		domain.BetChoice(r.URL.Query().Get("type")))
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// Controls godoc
//
//	@Summary	Get the outcome rule set
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	dto.ControlsResponseDTO
//	@Router		/api/admin/controls [get]
func (h *AdminHandler) Controls(w http.ResponseWriter, r *http.Request) {
	controls, err := h.adminService.Controls(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ControlsResponseDTO{Success: true, Controls: controls})
}

// UpdateControls godoc
//
//	@Summary	Replace the outcome rule set
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		domain.Controls	true	"Full rule set"
//	@Success	200		{object}	dto.ControlsResponseDTO
//	@Router		/api/admin/controls [put]
func (h *AdminHandler) UpdateControls(w http.ResponseWriter, r *http.Request) {
	var controls domain.Controls
	if !decode(w, r, &controls) {
		return
	}
	if err := h.adminService.UpdateControls(r.Context(), controls); err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ControlsResponseDTO{Success: true, Controls: controls})
}

// AddControlRule godoc
//
//	@Summary	Append an outcome rule
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.AddRuleRequestDTO	true	"Rule"
//	@Success	200		{object}	dto.RuleResponseDTO
//	@Router		/api/admin/controls/rules [post]
func (h *AdminHandler) AddControlRule(w http.ResponseWriter, r *http.Request) {
	var req dto.AddRuleRequestDTO
	if !decode(w, r, &req) {
		return
	}
	rule, err := h.adminService.AddControlRule(r.Context(), domain.ControlRule{
		Type:      domain.RuleType(req.Type),
		BetChoice: domain.BetChoice(req.BetChoice),
		Currency:  domain.Currency(req.Currency),
		BetAmount: req.BetAmount,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
		Action:    domain.RuleAction(req.Action),
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RuleResponseDTO{Success: true, Rule: rule})
}

// DeleteControlRule godoc
//
//	@Summary	Delete an outcome rule
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Rule id"
//	@Success	200	{object}	utils.Response
//	@Router		/api/admin/controls/rules/{id} [delete]
func (h *AdminHandler) DeleteControlRule(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.DeleteControlRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// ToggleControls godoc
//
//	@Summary	Switch the outcome rule engine on or off
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.ToggleControlsRequestDTO	true	"Desired state"
//	@Success	200		{object}	utils.Response
//	@Router		/api/admin/controls/toggle [post]
func (h *AdminHandler) ToggleControls(w http.ResponseWriter, r *http.Request) {
	var req dto.ToggleControlsRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if _, err := h.adminService.ToggleControls(r.Context(), req.Enabled); err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// BanUser godoc
//
//	@Summary	Ban a user and pin their IP and device
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"User id"
//	@Param		request	body		dto.BanRequestDTO	false	"Ban reason"
//	@Success	200		{object}	utils.Response
//	@Router		/api/admin/users/{id}/ban [post]
func (h *AdminHandler) BanUser(w http.ResponseWriter, r *http.Request) {
	var req dto.BanRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if _, err := h.adminService.BanUser(r.Context(), chi.URLParam(r, "id"), req.Reason); err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// UnbanUser godoc
//
//	@Summary	Lift a user ban
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	utils.Response
//	@Router		/api/admin/users/{id}/unban [post]
func (h *AdminHandler) UnbanUser(w http.ResponseWriter, r *http.Request) {
	if _, err := h.adminService.UnbanUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// AdjustBalance godoc
//
//	@Summary	Apply a manual balance correction
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"User id"
//	@Param		request	body		dto.AdjustBalanceRequestDTO	true	"Correction"
//	@Success	200		{object}	dto.BalanceResponseDTO
//	@Router		/api/admin/users/{id}/balance [post]
func (h *AdminHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustBalanceRequestDTO
	if !decode(w, r, &req) {
		return
	}
	balance, err := h.adminService.AdjustBalance(r.Context(), chi.URLParam(r, "id"),
		domain.Currency(req.Currency), req.Amount, req.Type)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Success: true, Balance: balance})
}

// SetVip godoc
//
//	@Summary	Override a user's VIP level
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"User id"
//	@Param		request	body		dto.SetVipRequestDTO	true	"Level"
//	@Success	200		{object}	utils.Response
//	@Router		/api/admin/users/{id}/vip [post]
func (h *AdminHandler) SetVip(w http.ResponseWriter, r *http.Request) {
	var req dto.SetVipRequestDTO
	if !decode(w, r, &req) {
		return
	}
	if err := h.adminService.SetVip(r.Context(), chi.URLParam(r, "id"), domain.VipLevel(req.Level)); err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// CreateContact godoc
//
//	@Summary	Create a support contact entry
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CreateContactRequestDTO	true	"Contact"
//	@Success	200		{object}	dto.ContactResponseDTO
//	@Router		/api/admin/contacts [post]
func (h *AdminHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateContactRequestDTO
	if !decode(w, r, &req) {
		return
	}
	contact, err := h.adminService.CreateContact(r.Context(), domain.Contact{
		Name:    req.Name,
		ImgURL:  req.ImgURL,
		Link:    req.Link,
		Address: req.Address,
		Type:    req.Type,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ContactResponseDTO{Success: true, Contact: contact})
}

// UpdateContact godoc
//
//	@Summary	Update a support contact entry
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Contact id"
//	@Param		request	body		dto.UpdateContactRequestDTO	true	"Fields to change"
//	@Success	200		{object}	dto.ContactResponseDTO
//	@Router		/api/admin/contacts/{id} [put]
func (h *AdminHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateContactRequestDTO
	if !decode(w, r, &req) {
		return
	}
	contact, err := h.adminService.UpdateContact(r.Context(), chi.URLParam(r, "id"), adminservice.ContactPatch{
		Name:    req.Name,
		ImgURL:  req.ImgURL,
		Link:    req.Link,
		Address: req.Address,
		Type:    req.Type,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ContactResponseDTO{Success: true, Contact: contact})
}

// DeleteContact godoc
//
//	@Summary	Delete a support contact entry
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Contact id"
//	@Success	200	{object}	utils.Response
//	@Router		/api/admin/contacts/{id} [delete]
func (h *AdminHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// Contacts godoc
//
//	@Summary	List support contact entries
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	dto.ContactsResponseDTO
//	@Router		/api/contacts [get]
func (h *AdminHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.adminService.Contacts(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ContactsResponseDTO{Success: true, Contacts: contacts})
}

// BannedUsers godoc
//
//	@Summary	List banned accounts
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/api/admin/users/banned [get]
func (h *AdminHandler) BannedUsers(w http.ResponseWriter, r *http.Request) {
	banned, err := h.adminService.BannedUsers(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "users": banned})
}

// Stats godoc
//
//	@Summary	Get the aggregate platform snapshot
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Router		/api/admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}

// Users godoc
//
//	@Summary	List all accounts
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	dto.UsersResponseDTO
//	@Router		/api/admin/users [get]
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.Users(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UsersResponseDTO{Success: true, Users: users})
}

// UpdateUser godoc
//
//	@Summary	Update editable user fields
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"User id"
//	@Param		request	body		dto.UpdateUserRequestDTO	true	"Fields to change"
//	@Success	200		{object}	dto.UserResponseDTO
//	@Router		/api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequestDTO
	if !decode(w, r, &req) {
		return
	}
	patch := adminservice.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Balance:  req.Balance,
		Online:   req.Online,
	}
	if req.ActiveCurrency != nil {
		c := domain.Currency(*req.ActiveCurrency)
		patch.ActiveCurrency = &c
	}
	if req.VipLevel != nil {
		l := domain.VipLevel(*req.VipLevel)
		patch.VipLevel = &l
	}
	user, err := h.adminService.UpdateUser(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respondErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UserResponseDTO{Success: true, User: user})
}
