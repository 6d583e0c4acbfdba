// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")

		// Handle cases like "en-US,en;q=0.9,fil;q=0.8"
		if lang != "" {
			langs := strings.Split(lang, ",")
			if len(langs) > 0 {
				firstLang := strings.TrimSpace(strings.Split(langs[0], ";")[0])
				if idx := strings.Index(firstLang, "-"); idx > 0 {
					firstLang = firstLang[:idx]
				}
				lang = firstLang
			}
		}
		if lang == "" {
			lang = "en"
		}

		c.Set("lang", lang)
		c.Next()
	}
}
