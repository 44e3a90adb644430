package middleware

import (
	"skillink/pkg/translator"

	"github.com/gin-gonic/gin"
)

// LanguageMiddleware resolves Accept-Language to a supported language, en by default.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", translator.Match(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
