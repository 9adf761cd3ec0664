package jwt

import (
	"errors"
	"fmt"
	"log"
	"time"

	"meal-planner/domain"
	"meal-planner/internal/utils"

	"github.com/golang-jwt/jwt/v4"
)

// Session tokens last 7 days, matching the cookie lifetime the web UI sets.
const sessionDuration = 7 * 24 * time.Hour

type (
	JWTService interface {
		GenerateSessionToken() string
		ValidateSessionToken(token string) (*jwt.Token, error)
		GetRoleByToken(token string) (string, error)
	}

	sessionClaim struct {
		Role string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: utils.GetConfig("JWT_SECRET"),
		issuer:    "MEAL-PLANNER",
	}
}

func (j *jwtService) GenerateSessionToken() string {
	claims := sessionClaim{
		domain.RoleUser,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionDuration)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Println(err)
	}
	return tx
}

func (j *jwtService) parseToken(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateSessionToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &sessionClaim{}, j.parseToken)
}

func (j *jwtService) GetRoleByToken(token string) (string, error) {
	parsed, err := j.ValidateSessionToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims := parsed.Claims.(*sessionClaim)
	return claims.Role, nil
}
