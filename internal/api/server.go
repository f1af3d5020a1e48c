// Package api exposes the scan pipeline over HTTP for frontends and
// automation.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CodeMonkeyCybersecurity/wpcompass/internal/config"
	"github.com/CodeMonkeyCybersecurity/wpcompass/internal/logger"
	"github.com/CodeMonkeyCybersecurity/wpcompass/pkg/report"
	"github.com/CodeMonkeyCybersecurity/wpcompass/pkg/scanner"
)

// ScanFunc runs one scan. Injected so handler tests never touch the
// network.
type ScanFunc func(ctx context.Context, url string) (*scanner.ScanResult, error)

// Server routes scan requests to the scanner and shapes the response.
type Server struct {
	log  *logger.Logger
	cfg  config.ServerConfig
	scan ScanFunc
}

func NewServer(log *logger.Logger, cfg config.ServerConfig, scan ScanFunc) *Server {
	return &Server{
		log:  log.WithComponent("api"),
		cfg:  cfg,
		scan: scan,
	}
}

// Router assembles the gin engine with logging, CORS, and per-IP rate
// limiting applied to every route.
func (s *Server) Router(rateCfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware(s.log))
	r.Use(CORSMiddleware(s.cfg.CORSOrigins))
	r.Use(RateLimitMiddleware(rateCfg))

	r.GET("/healthz", s.handleHealth)
	r.POST("/api/scan", s.handleScan)

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type scanRequest struct {
	URL string `json:"url"`
}

// scanResponse is the full report envelope: the raw scan result plus
// the derived planning layers, so frontends never re-derive them.
type scanResponse struct {
	Result         *scanner.ScanResult `json:"result"`
	Annotations    []report.Annotation `json:"annotations"`
	MigrationScope report.Scope        `json:"migrationScope"`
}

func (s *Server) handleScan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	target := strings.TrimSpace(req.URL)
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}
	if !scanner.IsURLAllowed(scanner.NormalizeURL(target)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL"})
		return
	}

	result, err := s.scan(c.Request.Context(), target)
	if err != nil {
		s.log.Errorw("Scan failed", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scanResponse{
		Result:         result,
		Annotations:    report.Annotations(result),
		MigrationScope: report.MigrationScope(result),
	})
}
