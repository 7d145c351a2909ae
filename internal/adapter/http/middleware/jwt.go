package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"order_ledger/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	// UserKey holds the authenticated subject in the gin context.
	UserKey   = "auth_user"
	AdminRole = "admin"
)

var (
	errMissingAuth  = pkg.NewDomainErrorSimple("MISSING_AUTH_HEADER", "Authorization header required", http.StatusUnauthorized)
	errInvalidAuth  = pkg.NewDomainErrorSimple("INVALID_AUTH_FORMAT", "Expected: Bearer <token>", http.StatusUnauthorized)
	errInvalidToken = pkg.NewDomainErrorSimple("INVALID_TOKEN", "Invalid or expired token", http.StatusUnauthorized)
	errForbidden    = pkg.NewDomainErrorSimple("FORBIDDEN", "Admin role required", http.StatusForbidden)
)

type JWTConfig struct {
	Secret string
	Logger *zap.Logger
	// Role is required in the "role" claim when set.
	Role string
}

// JWT validates HS256 bearer tokens and stores the subject under UserKey.
func JWT(cfg JWTConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		header := c.GetHeader("Authorization")
		if header == "" {
			logger.Warn("missing authorization header", zap.String("path", path))
			abort(c, errMissingAuth)
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			abort(c, errInvalidAuth)
			return
		}

		token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			logger.Warn("jwt validation failed", zap.String("path", path), zap.Error(err))
			abort(c, errInvalidToken)
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abort(c, errInvalidToken)
			return
		}

		if cfg.Role != "" {
			if role, _ := claims["role"].(string); role != cfg.Role {
				logger.Warn("role rejected", zap.String("path", path), zap.String("role", role))
				abort(c, errForbidden)
				return
			}
		}
		sub, _ := claims.GetSubject()
		c.Set(UserKey, sub)
		c.Next()
	}
}

// User returns the authenticated subject, or "" outside the middleware.
func User(c *gin.Context) string {
	return c.GetString(UserKey)
}

func abort(c *gin.Context, err *pkg.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToHTTPError())
}
