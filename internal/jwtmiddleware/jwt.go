package jwtmiddleware

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"shopapi/internal/tokens"
)

func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	cfg := echojwt.WithConfig(echojwt.Config{
		SigningMethod: "HS256",
		SigningKey:    secret,
		ContextKey:    "user",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &tokens.AccessClaims{}
		},
	})
	return cfg
}
