package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "github.com/shilwantharshal/mini-user-management/internal/delivery/context"
	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
	domainerrors "github.com/shilwantharshal/mini-user-management/internal/domain/errors"
	"github.com/shilwantharshal/mini-user-management/internal/usecase"
)

// AuthMiddleware guards protected routes with the access control
// pipeline: it resolves the bearer token to a live account and makes the
// account available to handlers.
type AuthMiddleware struct {
	acl usecase.AccessControl
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(acl usecase.AccessControl) *AuthMiddleware {
	return &AuthMiddleware{acl: acl}
}

// Authenticate validates the bearer token, resolves the account and
// enforces the active-status precondition. The resolved account is set
// on the request context for handlers and later middleware.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated.WithDetails("authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrUnauthenticated.WithDetails("invalid token format, must be Bearer token")
		}

		account, err := m.acl.Authorize(c.Request().Context(), tokenString, nil)
		if err != nil {
			return err
		}

		deliverycontext.SetAccount(c, account)

		return next(c)
	}
}

// RequireRole is a middleware factory enforcing the role precondition of
// the pipeline. It must be used AFTER Authenticate, which already
// verified the token, existence and status in that order.
func (m *AuthMiddleware) RequireRole(allowed ...entity.Role) echo.MiddlewareFunc {
	roles := entity.Roles(allowed)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, ok := deliverycontext.GetAccount(c)
			if !ok {
				return errors.WithStack(domainerrors.ErrUnauthenticated)
			}

			if len(roles) > 0 && !roles.Contains(account.Role) {
				return errors.WithStack(domainerrors.ErrForbidden)
			}

			return next(c)
		}
	}
}
