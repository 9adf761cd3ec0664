package domain

import "errors"

const RoleUser = "user"

var (
	MessageSuccessLogin  = "login successful"
	MessageSuccessLogout = "logout successful"
	MessageFailedLogin   = "login failed"

	MesaageUserNotAllowed = "user not allowed"

	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotAllowed  = errors.New("user not allowed")
)

type (
	LoginRequest struct {
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)
