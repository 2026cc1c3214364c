package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tinytales/storefront/internal/web"
)

// Recovery turns a panic into the HTML error page.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("error", r).
					Str("path", c.Request.URL.Path).
					Str("request_id", c.Writer.Header().Get(requestIDHeader)).
					Msg("panic recovered")
				c.HTML(http.StatusInternalServerError, web.ErrorTemplate, gin.H{
					"Title": "Something went wrong",
					"Error": "Please try again in a moment.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
