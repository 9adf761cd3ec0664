package auth

import (
	"meal-planner/domain"
	"meal-planner/internal/utils"
	"meal-planner/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type (
	AuthService interface {
		Login(password string) (domain.LoginResponse, error)
	}

	authService struct {
		jwtService jwt.JWTService
	}
)

func NewAuthService(jwtService jwt.JWTService) AuthService {
	return &authService{jwtService: jwtService}
}

// Login checks the app password and issues a session token. When
// APP_PASSWORD_HASH is configured the comparison is a bcrypt check,
// otherwise it falls back to the plain APP_PASSWORD value.
func (s *authService) Login(password string) (domain.LoginResponse, error) {
	hash := utils.GetConfig("APP_PASSWORD_HASH")
	if hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			return domain.LoginResponse{}, domain.ErrInvalidPassword
		}
	} else {
		plain := utils.GetConfig("APP_PASSWORD")
		if plain == "" || password != plain {
			return domain.LoginResponse{}, domain.ErrInvalidPassword
		}
	}

	return domain.LoginResponse{Token: s.jwtService.GenerateSessionToken()}, nil
}
