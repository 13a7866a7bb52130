// Package api exposes the processed batches over HTTP.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"newsgenie/internal/app"
	"newsgenie/internal/metrics"
	"newsgenie/internal/news"
)

const (
	defaultArticleLimit = 20
	defaultTrendLimit   = 10
	maxChatQueryLen     = 500
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/metrics", s.metrics)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/articles", s.listArticles)
		v1.GET("/trends", s.listTrends)
		v1.GET("/sentiment", s.sentimentSummary)
		v1.POST("/chat", s.chat)
		v1.POST("/refresh", s.refresh)
	}
}

func (s *Server) health(c *gin.Context) {
	stats := metrics.Global.GetStats()
	status := http.StatusOK
	if healthy, ok := stats["is_healthy"].(bool); ok && !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":     statusWord(status),
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func statusWord(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "degraded"
}

func (s *Server) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Global.GetStats())
}

func (s *Server) listArticles(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))

	limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultArticleLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = defaultArticleLimit
	}

	articles, err := s.svc.Articles(c.Request.Context(), category, limit)
	if err != nil {
		internalError(c)
		return
	}
	if articles == nil {
		articles = []news.Article{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(articles),
		"articles": articles,
	})
}

func (s *Server) listTrends(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultTrendLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = defaultTrendLimit
	}

	t, err := s.svc.Trends(c.Request.Context(), limit)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) sentimentSummary(c *gin.Context) {
	dist, err := s.svc.SentimentSummary(c.Request.Context())
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, dist)
}

type chatRequest struct {
	Query string `json:"query" binding:"required"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "body must be JSON with a non-empty \"query\" field",
		})
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" || len(query) > maxChatQueryLen {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": "query must be between 1 and 500 characters",
		})
		return
	}

	answer, err := s.svc.Chat(c.Request.Context(), query)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (s *Server) refresh(c *gin.Context) {
	s.svc.Refresh()
	c.JSON(http.StatusOK, gin.H{"status": "refreshing"})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "internal_error",
		"message": "internal server error",
	})
}
