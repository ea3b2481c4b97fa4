package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	userdomain "github.com/smallbiznis/tipfolio/internal/user/domain"
)

const currentUserKey = "current_user"

// AuthMiddleware resolves the bearer token to an owner account.
func (s *Server) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token := ""
		if strings.HasPrefix(strings.ToLower(header), "bearer ") {
			token = strings.TrimSpace(header[len("bearer "):])
		}
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.userSvc.GetByToken(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// PremiumMiddleware gates subscriber-only features.
func (s *Server) PremiumMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !user.Premium {
			AbortWithError(c, ErrPremiumRequired)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *userdomain.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*userdomain.User)
	return user
}
