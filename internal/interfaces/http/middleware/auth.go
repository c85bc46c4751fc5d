package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
	"github.com/LexovateAyacucho/qhoar-web/internal/interfaces/http/response"
	"github.com/LexovateAyacucho/qhoar-web/pkg/jwt"
	"github.com/LexovateAyacucho/qhoar-web/pkg/logger"
	"github.com/LexovateAyacucho/qhoar-web/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AccessCookie carries the access token for browser clients
	AccessCookie = "token"
	// RefreshCookie carries the refresh token for browser clients
	RefreshCookie = "refresh_token"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// SessionIDKey is the context key for the server-side session id
	SessionIDKey = "sessionId"
)

// SessionReader looks up server-side sessions
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
}

// AuthMiddleware accepts an access token from the Authorization header or the
// token cookie. When sessions is set the token's session must still exist,
// so logout revokes outstanding access tokens.
func AuthMiddleware(jwtService *jwt.JWTService, sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		tokenString, problem := bearerToken(c)
		if problem != "" {
			logger.Debug(ctx, "Authentication failed", zap.String("path", c.Request.URL.Path), zap.String("reason", problem))
			abortUnauthorized(c, problem)
			return
		}

		claims, err := jwtService.ValidateTyped(tokenString, jwt.TypeAccess)
		if err != nil {
			logger.Debug(ctx, "Token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		if sessions != nil {
			session, err := sessions.GetSession(ctx, claims.SessionID)
			if err != nil {
				if !redis.IsNil(err) {
					logger.Error(ctx, "Session lookup failed", zap.Error(err))
					response.Error(c, err)
					c.Abort()
					return
				}
				abortUnauthorized(c, "Session expired")
				return
			}
			if session.UserID != claims.UserID.String() {
				abortUnauthorized(c, "Invalid session")
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		c.Set(SessionIDKey, claims.SessionID)
		c.Request = c.Request.WithContext(context.WithValue(ctx, logger.UserIDKey, claims.UserID.String()))

		c.Next()
	}
}

// bearerToken returns the access token or a message explaining its absence
func bearerToken(c *gin.Context) (string, string) {
	if authHeader := c.GetHeader(AuthorizationHeader); authHeader != "" {
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			return "", "Invalid authorization format. Use: Bearer <token>"
		}
		return strings.TrimPrefix(authHeader, BearerPrefix), ""
	}
	if cookie, err := c.Cookie(AccessCookie); err == nil && cookie != "" {
		return cookie, ""
	}
	return "", "Authorization header is required"
}

func abortUnauthorized(c *gin.Context, message string) {
	response.ErrorWithStatus(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, message)
	c.Abort()
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}

// GetSessionID gets the session id of the access token
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			abortUnauthorized(c, "User role not found")
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.ErrorWithStatus(c, http.StatusForbidden, domainerrors.CodeForbidden, "Insufficient permissions")
		c.Abort()
	}
}
