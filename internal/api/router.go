package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/LJTian/CreatorHub/internal/catalog"
	"github.com/LJTian/CreatorHub/internal/collector"
	"github.com/LJTian/CreatorHub/internal/config"
	"github.com/gin-gonic/gin"
)

// ContentService 由 content.Fetcher 实现
type ContentService interface {
	GetRecentContent(ctx context.Context) collector.ContentResult
	ClearCache(ctx context.Context) error
}

type Server struct {
	content ContentService
	catalog *catalog.Catalog
	cfg     *config.Config
	now     func() time.Time
}

func NewServer(content ContentService, cat *catalog.Catalog, cfg *config.Config) *Server {
	return &Server{content: content, catalog: cat, cfg: cfg, now: config.Now}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/content/recent", s.recentContent)
		v1.GET("/content/all", s.allContent)
		v1.GET("/bonuses", s.listBonuses)
		v1.GET("/socials", s.listSocials)
		v1.GET("/donations", s.listDonations)
		v1.GET("/gifts", s.listGifts)
	}

	// 只有配置了管理员账号时才暴露清缓存接口
	if s.cfg != nil && s.cfg.AdminUser != "" && s.cfg.AdminPass != "" {
		admin := v1.Group("/admin", adminAuthMiddleware(s.cfg.AdminUser, s.cfg.AdminPass))
		admin.DELETE("/content/cache", s.clearContentCache)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// recentContent 上游失败时也返回 200 + 兜底数据
func (s *Server) recentContent(c *gin.Context) {
	ok(c, s.content.GetRecentContent(c.Request.Context()))
}

// allContent 视频在前、直播在后的合并列表，兼容旧前端
func (s *Server) allContent(c *gin.Context) {
	ok(c, s.content.GetRecentContent(c.Request.Context()).All())
}

func (s *Server) clearContentCache(c *gin.Context) {
	if err := s.content.ClearCache(c.Request.Context()); err != nil {
		log.Printf("api: clear content cache error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}
	ok(c, gin.H{"cleared": true})
}

func (s *Server) listBonuses(c *gin.Context) {
	ok(c, s.catalog.Bonuses)
}

func (s *Server) listSocials(c *gin.Context) {
	ok(c, s.catalog.Socials)
}

func (s *Server) listDonations(c *gin.Context) {
	ok(c, s.catalog.Donations)
}

func (s *Server) listGifts(c *gin.Context) {
	ok(c, s.catalog.GiftViews(s.now()))
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}
