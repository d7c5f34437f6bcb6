package handlers

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
	"village-profile/database"
	"village-profile/fallback"
	"village-profile/feedback"
	"village-profile/geo"
	"village-profile/models"
	"village-profile/news"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server wires the store, the article directory and the feedback service
// into HTTP handlers. One Server is shared by all requests.
type Server struct {
	store     database.Store
	directory *news.Directory
	feedback  *feedback.Service
	fallback  *fallback.Dataset
	logger    *zap.Logger

	loadMu sync.Mutex
}

func NewServer(store database.Store, dir *news.Directory, fb *feedback.Service, ds *fallback.Dataset, logger *zap.Logger) *Server {
	return &Server{
		store:     store,
		directory: dir,
		feedback:  fb,
		fallback:  ds,
		logger:    logger,
	}
}

// Reload replaces the directory with a fresh read from the store.
func (s *Server) Reload(ctx context.Context) int {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.reloadLocked(ctx)
}

func (s *Server) reloadLocked(ctx context.Context) int {
	articles := news.Load(ctx, s.store, s.fallback.Articles, s.logger)
	s.directory.Replace(articles)
	return len(articles)
}

// ensureLoaded fills the directory on first use.
func (s *Server) ensureLoaded(ctx context.Context) {
	if s.directory.Loaded() {
		return
	}
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if !s.directory.Loaded() {
		s.reloadLocked(ctx)
	}
}

func (s *Server) loadPoints(ctx context.Context) geo.Points {
	return geo.Load(ctx, s.store, geo.Points{
		TourismSpots: s.fallback.TourismSpots,
		Businesses:   s.fallback.Businesses,
	}, s.logger)
}

// Router builds the gin engine with every page and API route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(s.logger), gin.CustomRecovery(s.recovery))

	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")))

	// Pages
	r.GET("/", s.Home)
	r.GET("/about", s.About)
	r.GET("/news", s.NewsList)
	r.GET("/news/:id", s.NewsDetail)
	r.POST("/news/:id/like", s.LikeArticle)
	r.GET("/map", s.MapPage)
	r.GET("/map/tourism/:id", s.TourismDetail)
	r.GET("/map/business/:id", s.BusinessDetail)
	r.GET("/contact", s.ContactPage)
	r.POST("/contact", s.SubmitContact)
	r.GET("/healthz", s.Healthz)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/news", s.GetArticles)
		api.GET("/news/:id", s.GetArticle)
		api.GET("/stats", s.GetStats)
		api.GET("/map", s.GetMap)
		api.POST("/feedback", s.PostFeedback)
		api.GET("/feedback/stats", s.GetFeedbackStats)
		api.POST("/reload", s.PostReload)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Title": "Tidak ditemukan", "error": "Halaman tidak ditemukan"})
	})

	return r
}

func (s *Server) recovery(c *gin.Context, err any) {
	s.logger.Error("Handler panicked", zap.Any("panic", err), zap.String("path", c.Request.URL.Path))
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Title": "Error", "error": "Terjadi kesalahan"})
	c.Abort()
}

var monthsID = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// formatDate renders a date the way id-ID locales do: 15 Januari 2024.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.Itoa(t.Day()) + " " + monthsID[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

var templateFuncs = template.FuncMap{
	"formatDate":    formatDate,
	"categoryLabel": news.CategoryLabel,
	"upper":         strings.ToUpper,
	"category":      func(c models.Category) string { return string(c) },
	// article bodies are authored HTML from the store
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
}
