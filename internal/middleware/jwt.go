package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyabroad-api/internal/models"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
	"github.com/noah-isme/studyabroad-api/pkg/response"
)

// ContextUserKey is the gin context key storing the bearer session.
const ContextUserKey = "currentUser"

// SessionValidator turns an access token into a session.
type SessionValidator interface {
	Session(token string) (*models.Session, error)
}

// JWT protects routes by requiring a valid access token.
func JWT(auth SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		session, err := auth.Session(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		attachSession(c, session)
		c.Next()
	}
}

// OptionalJWT attaches the session when a valid token is present but does not block.
func OptionalJWT(auth SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.Next()
			return
		}
		if session, err := auth.Session(token); err == nil {
			attachSession(c, session)
		}
		c.Next()
	}
}

// CurrentSession returns the session attached by JWT, or nil.
func CurrentSession(c *gin.Context) *models.Session {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}

func attachSession(c *gin.Context, session *models.Session) {
	c.Set(ContextUserKey, session)
	c.Request = c.Request.WithContext(models.WithSession(c.Request.Context(), session))
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", appErrors.ErrUnauthorized
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
