package middleware

import (
	"fmt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"useraccounts/internal/auth"
	apperrors "useraccounts/internal/errors"
	"useraccounts/internal/logger"
)

// ClaimsKey is the echo context key holding the verified *auth.Claims.
const ClaimsKey = "claims"

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token in the
// Authorization header. On success the decoded claims are available through
// ClaimsFrom.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ClaimsKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return verifier.Verify(token)
		},
		SuccessHandler: func(c echo.Context) {
			if claims := ClaimsFrom(c); claims != nil {
				c.Set(logger.UserIDKey, claims.UserID())
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
		},
	})
}

// ClaimsFrom returns the claims attached by RequireAuth, or nil.
func ClaimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(ClaimsKey).(*auth.Claims)
	return claims
}
