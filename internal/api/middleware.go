package api

import (
	"crypto/subtle"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// BasicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// 仅当配置了 APP_BASIC_USER / APP_BASIC_PASS 时启用。
// /health 不做认证，便于健康检查。
func BasicAuthMiddleware(user, pass string) gin.HandlerFunc {
	check := basicAuth("Restricted", user, pass)
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		check(c)
	}
}

func adminAuthMiddleware(user, pass string) gin.HandlerFunc {
	return basicAuth("Admin", user, pass)
}

func basicAuth(realm, user, pass string) gin.HandlerFunc {
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// ServeSPA 托管前端静态文件，未匹配 API 的 GET 均返回 index.html
func ServeSPA(r *gin.Engine, webRoot string) {
	assetsDir := filepath.Join(webRoot, "assets")
	indexFile := filepath.Join(webRoot, "index.html")
	r.Static("/assets", assetsDir)
	r.Static("/images", filepath.Join(webRoot, "images"))
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(indexFile)
	})
}
