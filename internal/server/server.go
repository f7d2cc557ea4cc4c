package server

import (
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/commission"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/config"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/dashboard"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/ingest"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/ranking"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/storage"
	"github.com/STCADSVERTISING/shopee-aff-web/internal/sweep"
	"github.com/gin-gonic/gin"
)

// Server wires the discovery/commission/ranking core to the HTTP surface.
type Server struct {
	collector domain.Collector
	resolver  *commission.Resolver
	pipeline  *ranking.Pipeline
	sweeper   *sweep.Runner

	configPath     string
	categoriesPath string

	mu         sync.RWMutex
	lastResult []domain.Listing
	lastSweep  []sweep.Result
}

func New(collector domain.Collector, resolver *commission.Resolver, configPath, categoriesPath string) *Server {
	pipeline := ranking.New(resolver)
	return &Server{
		collector:      collector,
		resolver:       resolver,
		pipeline:       pipeline,
		sweeper:        sweep.NewRunner(collector, pipeline),
		configPath:     configPath,
		categoriesPath: categoriesPath,
	}
}

// Routes registers the API under /api plus the dashboard page.
func (s *Server) Routes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/config", s.getConfig)
	api.POST("/config", s.setConfig)
	api.GET("/categories", s.getCategories)
	api.POST("/search", s.search)
	api.POST("/top-by-category", s.topByCategory)
	api.POST("/commission/upload", s.uploadCommission)
	api.GET("/export", s.export)

	r.GET("/dashboard", s.dashboard)
}

func (s *Server) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, config.Load(s.configPath))
}

func (s *Server) setConfig(c *gin.Context) {
	var cfg domain.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid config"})
		return
	}
	if err := config.Save(s.configPath, cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist config"})
		return
	}
	s.resolver.UpdateConfig(cfg.Affiliate)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) getCategories(c *gin.Context) {
	cats, err := ingest.LoadCategories(s.categoriesPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

type searchRequest struct {
	Keyword   string  `json:"keyword"`
	Limit     int     `json:"limit"`
	MinRating float64 `json:"min_rating"`
	MinSold   int64   `json:"min_sold"`
	Sort      string  `json:"sort"` // sold | score
}

func (s *Server) search(c *gin.Context) {
	req := searchRequest{Limit: 120, MinRating: 4.5, MinSold: 100, Sort: ranking.SortBySold}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	listings, _ := s.collector.Search(c.Request.Context(), req.Keyword, req.Limit, "sales")
	ranked := s.pipeline.Rank(c.Request.Context(), listings, req.MinRating, req.MinSold, req.Sort)

	s.mu.Lock()
	s.lastResult = ranked
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"items": ranked, "count": len(ranked)})
}

func (s *Server) topByCategory(c *gin.Context) {
	limitPerCat, _ := strconv.Atoi(c.DefaultQuery("limit_per_cat", "20"))
	minRating, _ := strconv.ParseFloat(c.DefaultQuery("min_rating", "4.5"), 64)
	minSold, _ := strconv.ParseInt(c.DefaultQuery("min_sold", "100"), 10, 64)
	useScore := c.DefaultQuery("use_score", "true") == "true"

	cats, err := ingest.LoadCategories(s.categoriesPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load categories"})
		return
	}

	results := s.sweeper.Run(c.Request.Context(), cats, limitPerCat, minRating, minSold, useScore)

	var flat []domain.Listing
	for _, res := range results {
		flat = append(flat, res.Items...)
	}

	s.mu.Lock()
	s.lastSweep = results
	s.lastResult = flat
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"categories": results})
}

func (s *Server) uploadCommission(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}

	count := s.resolver.IngestManualCSV(data)
	c.JSON(http.StatusOK, gin.H{"ok": true, "ingested": count})
}

func (s *Server) export(c *gin.Context) {
	s.mu.RLock()
	listings := s.lastResult
	s.mu.RUnlock()

	switch c.DefaultQuery("format", "xlsx") {
	case "ndjson":
		c.Header("Content-Type", "application/x-ndjson")
		c.Header("Content-Disposition", `attachment; filename="listings.ndjson"`)
		if err := storage.WriteNDJSON(c.Writer, listings); err != nil {
			c.Status(http.StatusInternalServerError)
		}
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="listings.xlsx"`)
		if err := storage.WriteXLSX(c.Writer, listings); err != nil {
			c.Status(http.StatusInternalServerError)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format"})
	}
}

func (s *Server) dashboard(c *gin.Context) {
	s.mu.RLock()
	results := s.lastSweep
	s.mu.RUnlock()

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := dashboard.Render(c.Writer, results); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
