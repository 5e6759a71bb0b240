package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// RevocationChecker reports whether a session id has been revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Auth validates the JWT, rejects revoked sessions, and injects the claims
// into context under "user_id", "role", "jti", and "exp".
func Auth(jwtSecret string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			return authenticate(c, next, jwtSecret, revoked, authHeader)
		}
	}
}

// AuthOptional behaves like Auth but lets anonymous requests through without
// claims. A present-but-invalid token is still rejected.
func AuthOptional(jwtSecret string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}
			return authenticate(c, next, jwtSecret, revoked, authHeader)
		}
	}
}

func authenticate(c echo.Context, next echo.HandlerFunc, jwtSecret string, revoked RevocationChecker, authHeader string) error {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	jti, _ := claims["jti"].(string)
	if jti != "" && revoked != nil {
		isRevoked, err := revoked.IsRevoked(c.Request().Context(), jti)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "session check failed")
		}
		if isRevoked {
			return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
		}
	}

	c.Set("user_id", claims["sub"])
	c.Set("role", claims["role"])
	c.Set("jti", jti)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		c.Set("exp", exp.Time)
	} else {
		c.Set("exp", time.Time{})
	}

	return next(c)
}
