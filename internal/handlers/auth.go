package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = "user_id"
	userIDHeader = "X-User-ID"
)

// TokenParser verifies a bearer token; *casdoorsdk.Client satisfies it
type TokenParser interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// ProfileStore mirrors identity-provider profiles so author names resolve
type ProfileStore interface {
	Upsert(ctx context.Context, user *models.User) error
}

// NewCasdoorClient builds the token verifier from the casdoor application settings
func NewCasdoorClient(endpoint, clientID, clientSecret, certificate, organization, application string) *casdoorsdk.Client {
	return casdoorsdk.NewClient(endpoint, clientID, clientSecret, certificate, organization, application)
}

// CasdoorAuth verifies the bearer token and stores the caller id under
// "user_id". Each caller's profile is mirrored once per process.
func CasdoorAuth(parser TokenParser, profiles ProfileStore, logger utils.Logger) gin.HandlerFunc {
	var synced sync.Map

	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthenticated(c, "Missing bearer token")
			return
		}

		claims, err := parser.ParseJwtToken(token)
		if err != nil || claims.Id == "" {
			utils.GetLoggerFromContext(c, logger).Warn("Rejected bearer token", "error", err)
			abortUnauthenticated(c, "Invalid or expired token")
			return
		}

		if profiles != nil {
			if _, done := synced.Load(claims.Id); !done {
				if err := profiles.Upsert(c.Request.Context(), profileFromClaims(claims)); err != nil {
					utils.GetLoggerFromContext(c, logger).Warn("Failed to mirror user profile", "user_id", claims.Id, "error", err)
				} else {
					synced.Store(claims.Id, struct{}{})
				}
			}
		}

		c.Set(userIDKey, claims.Id)
		c.Next()
	}
}

// HeaderAuth trusts an upstream gateway that has already authenticated the
// caller and forwards the id in X-User-ID.
func HeaderAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(userIDHeader))
		if userID == "" {
			abortUnauthenticated(c, "Missing "+userIDHeader+" header")
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func profileFromClaims(claims *casdoorsdk.Claims) *models.User {
	user := &models.User{
		ID:       claims.Id,
		FullName: claims.DisplayName,
		Email:    claims.Email,
	}
	if user.FullName == "" {
		user.FullName = claims.Name
	}
	if claims.Avatar != "" {
		avatar := claims.Avatar
		user.AvatarURL = &avatar
	}
	return user
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Message: message,
		Code:    CodeUnauthenticated,
	})
}
