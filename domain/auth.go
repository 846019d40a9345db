package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/bidhaus/goapi/base/ctx"
)

type JwtCustomClaims struct {
	UserId string `json:"data"` // name data for backward compatibility
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, userId UserId) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (userId string, err error)
}
