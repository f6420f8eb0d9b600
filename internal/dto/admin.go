package dto

import "goalbet/internal/domain"

type RejectRequestDTO struct {
	Reason string `json:"reason,omitempty" example:"Transaction not found"`
}

type DecisionResponseDTO struct {
	Success    bool               `json:"success"`
	Deposit    *domain.Deposit    `json:"deposit,omitempty"`
	Withdrawal *domain.Withdrawal `json:"withdrawal,omitempty"`
}

type CreatePaymentRequestDTO struct {
	Currency  string `json:"currency" example:"MMK"`
	Name      string `json:"name" example:"KBZ Pay"`
	Address   string `json:"address" example:"09791234567"`
	Note      string `json:"note,omitempty"`
	IconURL   string `json:"iconUrl,omitempty"`
	QRCodeURL string `json:"qrCodeUrl,omitempty"`
}

type UpdatePaymentRequestDTO struct {
	Currency  string  `json:"currency" example:"MMK"`
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	Note      *string `json:"note,omitempty"`
	IconURL   *string `json:"iconUrl,omitempty"`
	QRCodeURL *string `json:"qrCodeUrl,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

type PaymentResponseDTO struct {
	Success bool                  `json:"success"`
	Payment *domain.PaymentMethod `json:"payment"`
}

type UploadVideoRequestDTO struct {
	Type string `json:"type" example:"goal"`
	URL  string `json:"url" example:"https://cdn.example.com/goal1.mp4"`
	Name string `json:"name,omitempty"`
}

type VideoResponseDTO struct {
	Success bool          `json:"success"`
	Video   *domain.Video `json:"video"`
}

type ControlsResponseDTO struct {
	Success  bool            `json:"success"`
	Controls domain.Controls `json:"controls"`
}

type AddRuleRequestDTO struct {
	Type      string  `json:"type,omitempty" example:"exact"`
	BetChoice string  `json:"betChoice,omitempty" example:"any"`
	Currency  string  `json:"currency,omitempty" example:"MMK"`
	BetAmount float64 `json:"betAmount,omitempty" example:"5000"`
	MinAmount float64 `json:"minAmount,omitempty"`
	MaxAmount float64 `json:"maxAmount,omitempty"`
	Action    string  `json:"action,omitempty" example:"lose"`
}

type RuleResponseDTO struct {
	Success bool                `json:"success"`
	Rule    *domain.ControlRule `json:"rule"`
}

type ToggleControlsRequestDTO struct {
	Enabled bool `json:"enabled"`
}

type BanRequestDTO struct {
	Reason string `json:"reason,omitempty" example:"Multi-accounting"`
}

type AdjustBalanceRequestDTO struct {
	Currency string  `json:"currency" example:"MMK"`
	Amount   float64 `json:"amount" example:"10000"`
	Type     string  `json:"type" example:"add"`
}

type BalanceResponseDTO struct {
	Success bool           `json:"success"`
	Balance domain.Amounts `json:"balance"`
}

type SetVipRequestDTO struct {
	Level string `json:"level" example:"VVIP"`
}

type CreateContactRequestDTO struct {
	Name    string `json:"name" example:"Support"`
	ImgURL  string `json:"imgUrl,omitempty"`
	Link    string `json:"link,omitempty" example:"https://t.me/support"`
	Address string `json:"address,omitempty"`
	Type    string `json:"type,omitempty" example:"link"`
}

type UpdateContactRequestDTO struct {
	Name    *string `json:"name,omitempty"`
	ImgURL  *string `json:"imgUrl,omitempty"`
	Link    *string `json:"link,omitempty"`
	Address *string `json:"address,omitempty"`
	Type    *string `json:"type,omitempty"`
}

type ContactResponseDTO struct {
	Success bool            `json:"success"`
	Contact *domain.Contact `json:"contact"`
}

type ContactsResponseDTO struct {
	Success  bool             `json:"success"`
	Contacts []domain.Contact `json:"contacts"`
}

type UpdateUserRequestDTO struct {
	Username       *string         `json:"username,omitempty"`
	Email          *string         `json:"email,omitempty"`
	Phone          *string         `json:"phone,omitempty"`
	Password       *string         `json:"password,omitempty"`
	ActiveCurrency *string         `json:"activeCurrency,omitempty"`
	VipLevel       *string         `json:"vipLevel,omitempty"`
	Balance        *domain.Amounts `json:"balance,omitempty"`
	Online         *bool           `json:"online,omitempty"`
}

type UsersResponseDTO struct {
	Success bool          `json:"success"`
	Users   []domain.User `json:"users"`
}
