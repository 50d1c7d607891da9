package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// requireAuth проверяет bearer-токен до вызова обработчика. Проверка —
// чистая функция от заголовка, бизнес-логики не касается.
func (s *Server) requireAuth(c *gin.Context) {
	user, err := s.auth.VerifyHeader(c.GetHeader("Authorization"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set("admin", user)
	c.Next()
}
