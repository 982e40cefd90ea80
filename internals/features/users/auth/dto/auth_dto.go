package dto

import (
	"lombain_backend/internals/features/users/auth/model"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginGoogleRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type AuthUserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToAuthUserDTO(m model.UserModel) AuthUserDTO {
	return AuthUserDTO{
		ID:    m.ID.String(),
		Name:  m.Name,
		Email: m.Email,
	}
}
