package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/crisisflow_dashboard/internal/apiclient"
	"github.com/shenikar/crisisflow_dashboard/internal/config"
)

const tokenContextKey = "auth_token"

// BearerTokenMiddleware определяет токен запроса (cookie, Authorization, AUTH_TOKEN)
// и кладет его в контекст. Запрос без токена не отклоняется: токен лишь
// передается во внешний API, если он есть.
func BearerTokenMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(tokenContextKey, apiclient.ResolveToken(c.Request, cfg.AuthCookieName, cfg.AuthToken))
		c.Next()
	}
}

// TokenFromContext возвращает токен, найденный BearerTokenMiddleware
func TokenFromContext(c *gin.Context) string {
	return c.GetString(tokenContextKey)
}
