package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"village-profile/feedback"
	"village-profile/geo"
	"village-profile/models"
	"village-profile/news"

	"github.com/gin-gonic/gin"
)

type NewsFilter struct {
	Category models.Category
	Search   string
}

type NewsPageData struct {
	Title      string
	Categories []news.CategoryOption
	Filters    NewsFilter
	Featured   *models.Article
	Articles   []models.Article
	Total      int
}

type ArticlePageData struct {
	Title   string
	Article models.Article
	Liked   bool
	Related []models.Article
}

type PlacePageData struct {
	Title  string
	Marker geo.Marker
}

type MapPageData struct {
	Title   string
	Layers  geo.Layers
	Markers []geo.Marker
	Center  [2]float64
}

type ContactPageData struct {
	Title  string
	Form   feedback.Form
	Errors map[string]string
	Notice string
}

type Feature struct {
	Title       string
	Description string
	Path        string
}

var homeFeatures = []Feature{
	{"Fitur Berita Terkini", "Kisah dan peristiwa terbaru dari warga Desa Cikadu.", "/news"},
	{"Kekuatan Ekonomi Lokal", "Usaha mandiri dan karya tangan para pelaku ekonomi desa.", "/map"},
	{"Jiwa Masyarakat Bersatu", "Tradisi dan kehidupan masyarakat desa.", "/about"},
	{"Hubungi Kami", "Kirim pertanyaan atau masukan untuk perangkat desa.", "/contact"},
}

type Stat struct {
	Label string
	Value string
}

var aboutStats = []Stat{
	{"Population", "2,500+"},
	{"Area", "15 km²"},
	{"Founded", "1892"},
	{"Awards", "5+"},
}

func (s *Server) Home(c *gin.Context) {
	s.ensureLoaded(c.Request.Context())

	all := s.directory.All()
	data := gin.H{
		"Title":    "Desa Cikadu",
		"Features": homeFeatures,
	}

	// Featured article plus the three latest others
	if featured, ok := news.Featured(all); ok {
		data["Featured"] = featured
		latest := news.Without(all, featured.ID)
		if len(latest) > 3 {
			latest = latest[:3]
		}
		data["Latest"] = latest
	}

	c.HTML(http.StatusOK, "home.html", data)
}

func (s *Server) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{
		"Title": "Tentang Desa",
		"Stats": aboutStats,
	})
}

func (s *Server) NewsList(c *gin.Context) {
	s.ensureLoaded(c.Request.Context())

	filters := NewsFilter{
		Category: news.ParseCategory(c.Query("category")),
		Search:   c.Query("q"),
	}

	articles := s.directory.Search(filters.Category, filters.Search)

	data := NewsPageData{
		Title:      "Berita",
		Categories: news.Categories,
		Filters:    filters,
		Articles:   articles,
		Total:      len(articles),
	}
	if featured, ok := news.Featured(articles); ok {
		data.Featured = &featured
		data.Articles = news.Without(articles, featured.ID)
	}

	c.HTML(http.StatusOK, "news.html", data)
}

func (s *Server) NewsDetail(c *gin.Context) {
	s.ensureLoaded(c.Request.Context())

	article, ok := s.directory.View(c.Param("id"))
	if !ok {
		// Unknown article goes back to the listing
		c.Redirect(http.StatusFound, "/news")
		return
	}

	related := news.Without(s.directory.All(), article.ID)
	if len(related) > 3 {
		related = related[:3]
	}

	c.HTML(http.StatusOK, "article.html", ArticlePageData{
		Title:   article.Title,
		Article: article,
		Liked:   likedArticles(c)[article.ID],
		Related: related,
	})
}

func (s *Server) LikeArticle(c *gin.Context) {
	s.ensureLoaded(c.Request.Context())

	id := c.Param("id")
	likes := likedArticles(c)

	// Without an explicit value the click flips the visitor's current state
	liked, err := strconv.ParseBool(c.PostForm("liked"))
	if err != nil {
		liked = !likes[id]
	}
	if liked == likes[id] {
		c.Redirect(http.StatusSeeOther, "/news/"+id)
		return
	}

	if _, ok := s.directory.Like(id, liked); !ok {
		c.Redirect(http.StatusSeeOther, "/news")
		return
	}

	if liked {
		likes[id] = true
	} else {
		delete(likes, id)
	}
	saveLikedArticles(c, likes)
	c.Redirect(http.StatusSeeOther, "/news/"+id)
}

func (s *Server) MapPage(c *gin.Context) {
	layers := geo.Layers{
		Tourism:    geo.ParseToggle(c.Query("tourism")),
		Businesses: geo.ParseToggle(c.Query("businesses")),
	}
	pts := s.loadPoints(c.Request.Context())

	c.HTML(http.StatusOK, "map.html", MapPageData{
		Title:   "Peta Desa",
		Layers:  layers,
		Markers: geo.Markers(pts.TourismSpots, pts.Businesses, layers),
		Center:  [2]float64{geo.CenterLat, geo.CenterLng},
	})
}

func (s *Server) TourismDetail(c *gin.Context) {
	s.placeDetail(c, geo.KindTourism)
}

func (s *Server) BusinessDetail(c *gin.Context) {
	s.placeDetail(c, geo.KindBusiness)
}

func (s *Server) placeDetail(c *gin.Context, kind geo.Kind) {
	pts := s.loadPoints(c.Request.Context())

	marker, ok := geo.Find(pts.TourismSpots, pts.Businesses, kind, c.Param("id"))
	if !ok {
		// Unknown point goes back to the map
		c.Redirect(http.StatusFound, "/map")
		return
	}

	c.HTML(http.StatusOK, "place.html", PlacePageData{
		Title:  marker.Name,
		Marker: marker,
	})
}

func (s *Server) ContactPage(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", ContactPageData{Title: "Kontak"})
}

func (s *Server) SubmitContact(c *gin.Context) {
	var form feedback.Form
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "contact.html", ContactPageData{
			Title:  "Kontak",
			Errors: map[string]string{"form": "Invalid form submission"},
		})
		return
	}

	receipt, err := s.feedback.Submit(c.Request.Context(), form)
	if err != nil {
		var verr *feedback.ValidationError
		if errors.As(err, &verr) {
			// Keep what the visitor typed so they can fix it
			c.HTML(http.StatusUnprocessableEntity, "contact.html", ContactPageData{
				Title:  "Kontak",
				Form:   form,
				Errors: verr.Fields,
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Title": "Error", "error": "Submission failed"})
		return
	}

	// Acknowledged: show the notice with an empty form
	c.HTML(http.StatusOK, "contact.html", ContactPageData{
		Title:  "Kontak",
		Notice: receipt.Message,
	})
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "articles_loaded": s.directory.Loaded()})
}
