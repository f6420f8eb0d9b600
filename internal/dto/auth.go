package dto

import "goalbet/internal/domain"

type RegisterRequestDTO struct {
	Phone    string `json:"phone" example:"959123456789"`
	Password string `json:"password" example:"Passw0rd!"`
	Username string `json:"username" example:"player1"`
	Email    string `json:"email" example:"player1@gmail.com"`
	DeviceID string `json:"deviceId" example:"dev-8f2a"`
}

type LoginRequestDTO struct {
	Phone    string `json:"phone" example:"959123456789"`
	Password string `json:"password" example:"Passw0rd!"`
	DeviceID string `json:"deviceId" example:"dev-8f2a"`
}

type AuthResponseDTO struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type UserResponseDTO struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

type CheckFieldRequestDTO struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type AvailabilityResponseDTO struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

type CheckBanRequestDTO struct {
	UserID   string `json:"userId,omitempty"`
	DeviceID string `json:"deviceId,omitempty"`
}

type CheckBanResponseDTO struct {
	Banned bool   `json:"banned"`
	Reason string `json:"reason,omitempty"`
}
