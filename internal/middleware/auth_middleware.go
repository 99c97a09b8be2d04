package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/visibility"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AuthMiddleware verifies the access token and resolves the principal and
// its visibility scope once for the request.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.AbortWithError(c, autherrors.ErrTokenNotFound)
			return
		}

		claims, err := ParseToken(tokenString, secret)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		if typ, _ := claims["typ"].(string); typ == TokenTypeRefresh {
			response.AbortWithError(c, autherrors.ErrInvalidToken)
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		// employee_id boleh kosong: akun tanpa profil karyawan
		employeeID, _ := claims["employee_id"].(string)
		role, _ := claims["role"].(string)
		role = strings.ToUpper(strings.TrimSpace(role))

		c.Set("user_id", userID)
		c.Set("user_id_validated", userID)
		c.Set("employee_id", employeeID)
		c.Set("role", role)
		c.Set(visibility.ContextKey, visibility.ForRole(role, employeeID))

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, userID)
		ctx = contextutil.WithEmployeeID(ctx, employeeID)
		if logger := contextutil.GetLogger(ctx, nil); logger != nil {
			ctx = contextutil.WithLogger(ctx, logger.With(zap.String("user_id", userID)))
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ParseToken verifies an HS256 token and returns its claims.
func ParseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
