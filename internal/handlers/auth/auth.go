package auth

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"goalbet/internal/apperr"
	"goalbet/internal/domain"
	"goalbet/internal/dto"
	"goalbet/internal/service/authservice"
	pkgauth "goalbet/pkg/auth"
	"goalbet/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, in authservice.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, phone, password, deviceID, ip string) (*domain.User, string, error)
	Logout(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	PollUser(ctx context.Context, userID string) (*domain.User, error)
	CheckUsername(ctx context.Context, username string) (*authservice.Availability, error)
	CheckEmail(ctx context.Context, email string) (*authservice.Availability, error)
	CheckPhone(ctx context.Context, phone string) (*authservice.Availability, error)
	CheckBan(ctx context.Context, userID, ip, deviceID string) (*authservice.BanCheck, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func sessionUserID(r *http.Request) string {
	id, _ := r.Context().Value(pkgauth.UserIDKey).(string)
	return id
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create an account with phone, password, username and Gmail address
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Validation failed"
//	@Failure		409		{object}	utils.Response	"Already registered"
//	@Router			/api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, token, err := h.authService.Register(r.Context(), authservice.RegisterInput{
		Phone:    req.Phone,
		Password: req.Password,
		Username: req.Username,
		Email:    req.Email,
		DeviceID: req.DeviceID,
		IP:       clientIP(r),
	})
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{Success: true, Token: token, User: user})
}

// Login godoc
//
//	@Summary		Authenticate user
//	@Description	Log in by phone number and get a session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid credentials"
//	@Failure		403		{object}	utils.Response	"Account banned"
//	@Router			/api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, token, err := h.authService.Login(r.Context(), req.Phone, req.Password, req.DeviceID, clientIP(r))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{Success: true, Token: token, User: user})
}

// Logout godoc
//
//	@Summary	Log out the session user
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	utils.Response
//	@Router		/api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), sessionUserID(r)); err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true})
}

// Me godoc
//
//	@Summary	Get the session user
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	dto.UserResponseDTO
//	@Failure	403	{object}	utils.Response	"Account banned"
//	@Failure	404	{object}	utils.Response	"User not found"
//	@Router		/api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUser(r.Context(), sessionUserID(r))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UserResponseDTO{Success: true, User: user})
}

// Poll godoc
//
//	@Summary	Poll the session user for state changes
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	dto.UserResponseDTO
//	@Router		/api/auth/poll [get]
func (h *AuthHandler) Poll(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.PollUser(r.Context(), sessionUserID(r))
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UserResponseDTO{Success: true, User: user})
}

// CheckUsername godoc
//
//	@Summary	Check username availability
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CheckFieldRequestDTO	true	"Field to check"
//	@Success	200		{object}	dto.AvailabilityResponseDTO
//	@Router		/api/auth/check-username [post]
func (h *AuthHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	h.checkField(w, r, func(ctx context.Context, req dto.CheckFieldRequestDTO) (*authservice.Availability, error) {
		return h.authService.CheckUsername(ctx, req.Username)
	})
}

// CheckEmail godoc
//
//	@Summary	Check email availability
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CheckFieldRequestDTO	true	"Field to check"
//	@Success	200		{object}	dto.AvailabilityResponseDTO
//	@Router		/api/auth/check-email [post]
func (h *AuthHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	h.checkField(w, r, func(ctx context.Context, req dto.CheckFieldRequestDTO) (*authservice.Availability, error) {
		return h.authService.CheckEmail(ctx, req.Email)
	})
}

// CheckPhone godoc
//
//	@Summary	Check phone availability
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CheckFieldRequestDTO	true	"Field to check"
//	@Success	200		{object}	dto.AvailabilityResponseDTO
//	@Router		/api/auth/check-phone [post]
func (h *AuthHandler) CheckPhone(w http.ResponseWriter, r *http.Request) {
	h.checkField(w, r, func(ctx context.Context, req dto.CheckFieldRequestDTO) (*authservice.Availability, error) {
		return h.authService.CheckPhone(ctx, req.Phone)
	})
}

func (h *AuthHandler) checkField(w http.ResponseWriter, r *http.Request, check func(context.Context, dto.CheckFieldRequestDTO) (*authservice.Availability, error)) {
	var req dto.CheckFieldRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := check(r.Context(), req)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AvailabilityResponseDTO{Available: res.Available, Message: res.Message})
}

// CheckBan godoc
//
//	@Summary		Pre-auth ban screening
//	@Description	Screen a visitor by account, IP and device before login
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CheckBanRequestDTO	true	"Identifiers to screen"
//	@Success		200		{object}	dto.CheckBanResponseDTO
//	@Router			/api/auth/check-ban [post]
func (h *AuthHandler) CheckBan(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckBanRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.authService.CheckBan(r.Context(), req.UserID, clientIP(r), req.DeviceID)
	if err != nil {
		utils.RespondWithError(w, apperr.HTTPStatus(err), apperr.Reason(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CheckBanResponseDTO{Banned: res.Banned, Reason: res.Reason})
}
