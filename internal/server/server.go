// Package server is the HTTP boundary: routing, auth, CORS and the
// translation of pipeline errors into client-facing responses.
package server

import (
	"context"
	"io"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gastozero/backend/internal/common"
	"github.com/gastozero/backend/internal/receipt"
	"github.com/gastozero/backend/internal/repository"
)

// ReceiptAnalyzer is the pipeline capability the OCR handlers depend on.
type ReceiptAnalyzer interface {
	AnalyzeUpload(ctx context.Context, r io.Reader, originalName string, userID uint) (receipt.Receipt, error)
}

type Server struct {
	cfg      *common.Config
	log      *slog.Logger
	users    *repository.UserRepository
	analyzer ReceiptAnalyzer
}

func New(cfg *common.Config, users *repository.UserRepository, analyzer ReceiptAnalyzer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, log: logger, users: users, analyzer: analyzer}
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.POST("/auth/register", s.handleRegister)
	r.POST("/auth/login", s.handleLogin)

	api := r.Group("/api")
	api.Use(JWTAuth(s.cfg.Auth.JWTSecret))
	{
		api.GET("/me", s.handleMe)
		api.POST("/ocr/analyze", s.handleAnalyze)
		api.GET("/ocr/test", s.handleOCRTest)
		api.POST("/receipts/export", s.handleExport)
		api.GET("/dashboard/summary", s.handleDashboardSummary)
	}
	return r
}

// respondError writes the structured failure body. The error kind is always
// specific enough to action; internal details never leak.
func respondError(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"message":    message,
		"error_kind": kind,
	})
}
