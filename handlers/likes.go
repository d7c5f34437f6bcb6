package handlers

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

const likedCookie = "liked_articles"

// likedArticles reads the ids the visitor has liked from their cookie.
func likedArticles(c *gin.Context) map[string]bool {
	out := make(map[string]bool)
	raw, err := c.Cookie(likedCookie)
	if err != nil || raw == "" {
		return out
	}
	for _, part := range strings.Split(raw, ",") {
		if id, err := url.QueryUnescape(part); err == nil && id != "" {
			out[id] = true
		}
	}
	return out
}

func saveLikedArticles(c *gin.Context, likes map[string]bool) {
	if len(likes) == 0 {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(likedCookie, "", -1, "/", "", false, true)
		return
	}

	ids := make([]string, 0, len(likes))
	for id := range likes {
		ids = append(ids, url.QueryEscape(id))
	}
	sort.Strings(ids)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(likedCookie, strings.Join(ids, ","), 365*24*60*60, "/", "", false, true)
}
