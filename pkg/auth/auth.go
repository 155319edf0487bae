package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"brewnote.dev/BrewNote/configs"
)

// SubjectKey is the gin context key the authenticated subject is stored
// under.
const SubjectKey = "auth.subject"

type Manager struct {
	conf   *configs.Config
	logger *zap.Logger
}

func NewAuthManager(conf *configs.Config, logger *zap.Logger) *Manager {
	return &Manager{conf: conf, logger: logger}
}

// Middleware validates a bearer HS256 token against the configured secret.
// With no secret configured the journal runs open, which is the default for
// a local single-user install.
func (a *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.conf.Auth.SecretKey == "" {
			c.Next()

			return
		}

		keyFunc := func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}

			return []byte(a.conf.Auth.SecretKey), nil
		}

		accessToken, found := extractTokenFromHeader(c.Request.Header)
		if !found {
			a.logger.Warn("no bearer token on request", zap.String("path", c.Request.URL.Path))
			abortUnauthenticated(c, "authorization header not found")

			return
		}

		token, err := jwt.ParseWithClaims(accessToken, jwt.MapClaims{}, keyFunc)
		if err != nil {
			a.logger.Error("error parsing token", zap.Error(err))
			abortUnauthenticated(c, "error parsing token")

			return
		}

		claims, found := token.Claims.(jwt.MapClaims)
		if !found || !token.Valid {
			a.logger.Error("invalid token", zap.Any("claims", claims))
			abortUnauthenticated(c, "invalid token")

			return
		}

		if subject, found := claims["sub"].(string); found {
			c.Set(SubjectKey, subject)
		}

		c.Next()
	}
}

func extractTokenFromHeader(header http.Header) (string, bool) {
	authorization := header.Get("Authorization")
	if len(authorization) == 0 {
		return "", false
	}

	prefix := "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		prefix = "bearer "
	}

	token, found := strings.CutPrefix(authorization, prefix)
	if !found {
		return "", false
	}

	return token, true
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"message": message, "code": "unauthenticated"},
	})
}
