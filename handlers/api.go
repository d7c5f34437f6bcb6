package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"village-profile/feedback"
	"village-profile/geo"
	"village-profile/news"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetArticles(c *gin.Context) {
	s.ensureLoaded(c.Request.Context())

	// Query parameters
	category := news.ParseCategory(c.Query("category"))
	search := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	articles := s.directory.Search(category, search)
	resp := gin.H{
		"total":    len(articles),
		"category": category,
		"q":        search,
	}
	if featured, ok := news.Featured(articles); ok {
		resp["featured_id"] = featured.ID
	}

	if limit > 0 && limit < len(articles) {
		articles = articles[:limit]
	}
	resp["articles"] = articles

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetArticle(c *gin.Context) {
	s.ensureLoaded(c.Request.Context())

	article, ok := s.directory.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

func (s *Server) GetStats(c *gin.Context) {
	s.ensureLoaded(c.Request.Context())
	c.JSON(http.StatusOK, s.directory.Stats())
}

func (s *Server) GetMap(c *gin.Context) {
	layers := geo.Layers{
		Tourism:    geo.ParseToggle(c.Query("tourism")),
		Businesses: geo.ParseToggle(c.Query("businesses")),
	}
	pts := s.loadPoints(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"layers":  layers,
		"center":  []float64{geo.CenterLat, geo.CenterLng},
		"markers": geo.Markers(pts.TourismSpots, pts.Businesses, layers),
	})
}

func (s *Server) PostFeedback(c *gin.Context) {
	var form feedback.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	receipt, err := s.feedback.Submit(c.Request.Context(), form)
	if err != nil {
		var verr *feedback.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": verr.Fields})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (s *Server) GetFeedbackStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.feedback.Stats())
}

func (s *Server) PostReload(c *gin.Context) {
	n := s.Reload(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"articles": n})
}
