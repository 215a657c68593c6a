package dto

import "github.com/controledu/controledu-api/internal/models"

// LoginRequest carries the credentials of any of the three roles.
type LoginRequest struct {
	Usuario  string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the session token and the resolved identity.
type LoginResponse struct {
	Token   string               `json:"token"`
	Usuario models.PrincipalInfo `json:"usuario"`
}

// ChangePasswordRequest carries a password change for the logged-in user.
type ChangePasswordRequest struct {
	PasswordActual string `json:"password_actual" validate:"required"`
	PasswordNueva  string `json:"password_nueva" validate:"required,min=8"`
}

// UpdateProfileRequest carries editable profile fields.
type UpdateProfileRequest struct {
	Nombres   string `json:"nombres" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
}
