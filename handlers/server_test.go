package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"
	"village-profile/database"
	"village-profile/fallback"
	"village-profile/feedback"
	"village-profile/models"
	"village-profile/news"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingStore serves no data and records feedback inserts.
type recordingStore struct {
	database.NoopStore
	inserted  []*models.Feedback
	insertErr error
}

func (s *recordingStore) InsertFeedback(ctx context.Context, fb *models.Feedback) error {
	s.inserted = append(s.inserted, fb)
	return s.insertErr
}

func newTestServer(t *testing.T, store database.Store) (*Server, *gin.Engine) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	ds, err := fallback.Load()
	require.NoError(t, err)

	srv := NewServer(store, news.NewDirectory(), feedback.NewService(store, logger, time.Second), ds, logger)
	return srv, srv.Router()
}

func do(r http.Handler, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPagesRender(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	for _, path := range []string{"/", "/about", "/news", "/news/3", "/map", "/contact"} {
		w := do(r, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "Desa Cikadu", path)
	}
}

func TestNewsDetailUnknownRedirects(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	w := do(r, http.MethodGet, "/news/does-not-exist", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/news", w.Header().Get("Location"))
}

func TestNewsDetailCountsViews(t *testing.T) {
	srv, r := newTestServer(t, database.NoopStore{})

	do(r, http.MethodGet, "/news/3", "", "")
	do(r, http.MethodGet, "/news/3", "", "")

	a, ok := srv.directory.Get("3")
	require.True(t, ok)
	assert.EqualValues(t, 3202, a.Views)
}

// browse replays a request carrying the cookies a browser would hold.
func browse(r http.Handler, method, target, form string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var likedValue = regexp.MustCompile(`name="liked" value="(true|false)"`)

func likeFormValue(t *testing.T, body string) string {
	t.Helper()
	m := likedValue.FindStringSubmatch(body)
	require.NotNil(t, m, "detail page has a like form")
	return m[1]
}

func TestLikeTogglesThroughPage(t *testing.T) {
	srv, r := newTestServer(t, database.NoopStore{})
	var cookies []*http.Cookie

	page := browse(r, http.MethodGet, "/news/1", "", cookies)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Equal(t, "true", likeFormValue(t, page.Body.String()))
	assert.Contains(t, page.Body.String(), "♡ 89")

	w := browse(r, http.MethodPost, "/news/1/like", "liked="+likeFormValue(t, page.Body.String()), cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/news/1", w.Header().Get("Location"))
	cookies = w.Result().Cookies()
	require.NotEmpty(t, cookies)

	a, _ := srv.directory.Get("1")
	assert.EqualValues(t, 90, a.Likes)

	page = browse(r, http.MethodGet, "/news/1", "", cookies)
	assert.Equal(t, "false", likeFormValue(t, page.Body.String()))
	assert.Contains(t, page.Body.String(), "♥ 90")

	w = browse(r, http.MethodPost, "/news/1/like", "liked="+likeFormValue(t, page.Body.String()), cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	a, _ = srv.directory.Get("1")
	assert.EqualValues(t, 89, a.Likes, "second click takes the like back")
}

func TestLikeIgnoresRepeatedClicks(t *testing.T) {
	srv, r := newTestServer(t, database.NoopStore{})

	w := browse(r, http.MethodPost, "/news/1/like", "liked=true", nil)
	cookies := w.Result().Cookies()
	browse(r, http.MethodPost, "/news/1/like", "liked=true", cookies)
	browse(r, http.MethodPost, "/news/1/like", "liked=true", cookies)

	a, _ := srv.directory.Get("1")
	assert.EqualValues(t, 90, a.Likes)

	// unlike without ever liking is a no-op
	browse(r, http.MethodPost, "/news/2/like", "liked=false", nil)
	a, _ = srv.directory.Get("2")
	assert.EqualValues(t, 156, a.Likes)
}

func TestLikeUnknownArticle(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	w := do(r, http.MethodPost, "/news/nope/like", "", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/news", w.Header().Get("Location"))
}

func TestNewsDetailRelated(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	w := do(r, http.MethodGet, "/news/3", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	i := strings.Index(body, "Berita Terkait")
	require.GreaterOrEqual(t, i, 0, "related section rendered")
	related := body[i:]
	assert.Equal(t, 3, strings.Count(related, `class="card"`))
	assert.NotContains(t, related, `href="/news/3"`)
	assert.Contains(t, related, `href="/news/1"`)
}

func TestMapPlaceDetail(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	w := do(r, http.MethodGet, "/map/tourism/1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ancient Temple Ruins")

	w = do(r, http.MethodGet, "/map/business/1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Green Valley Organic Farm")
	assert.Contains(t, w.Body.String(), `href="tel:`)
	assert.Contains(t, w.Body.String(), "812-3456-7890")

	w = do(r, http.MethodGet, "/map/tourism/99", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/map", w.Header().Get("Location"))

	w = do(r, http.MethodGet, "/map/business/3", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/map", w.Header().Get("Location"))
}

func TestMapDetailLinksResolve(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	w := do(r, http.MethodGet, "/api/map", "", "")
	var resp struct {
		Markers []struct {
			DetailURL string `json:"detail_url"`
		} `json:"markers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Markers, 5)

	for _, m := range resp.Markers {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, m.DetailURL, "", "").Code, m.DetailURL)
	}
}

func TestMapPopupEscapesText(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	body := do(r, http.MethodGet, "/map", "", "").Body.String()
	assert.Contains(t, body, "textContent")
	assert.NotContains(t, body, "'<strong>' + m.name")
}

func TestRecoveryByPath(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})
	r.GET("/boom", func(c *gin.Context) { panic("page exploded") })
	r.GET("/api/boom", func(c *gin.Context) { panic("api exploded") })

	w := do(r, http.MethodGet, "/boom", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Terjadi kesalahan")

	w = do(r, http.MethodGet, "/api/boom", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), `"error":"Internal error"`)
}

func TestNewsListFilters(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	w := do(r, http.MethodGet, "/news?q=FESTIVAL", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Festival Budaya")
	assert.NotContains(t, w.Body.String(), "Keripik Singkong")

	w = do(r, http.MethodGet, "/news?category=budaya&q=jembatan", "", "")
	assert.Contains(t, w.Body.String(), "Belum ada berita")
}

func TestAPIArticles(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	w := do(r, http.MethodGet, "/api/news?q=festival", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Articles   []models.Article `json:"articles"`
		Total      int              `json:"total"`
		FeaturedID string           `json:"featured_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "3", resp.FeaturedID)

	w = do(r, http.MethodGet, "/api/news?limit=2", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Total)
	assert.Len(t, resp.Articles, 2)
	assert.Equal(t, "1", resp.FeaturedID)

	w = do(r, http.MethodGet, "/api/news?category=infrastruktur", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
	assert.Contains(t, w.Body.String(), `"articles":[]`)
}

func TestAPIArticleNotFound(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	w := do(r, http.MethodGet, "/api/news/404", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/news/2", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIStats(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	w := do(r, http.MethodGet, "/api/stats", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var st news.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, 6, st.Total)
	assert.Equal(t, 1, st.Categories[models.CategoryBudaya])
}

func TestAPIMapToggles(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	count := func(target string) (tourism, business int) {
		w := do(r, http.MethodGet, target, "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Markers []struct {
				Kind string `json:"kind"`
			} `json:"markers"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		for _, m := range resp.Markers {
			if m.Kind == "tourism" {
				tourism++
			} else {
				business++
			}
		}
		return
	}

	tour, biz := count("/api/map")
	assert.Equal(t, 3, tour)
	assert.Equal(t, 2, biz)

	tour, biz = count("/api/map?tourism=false")
	assert.Equal(t, 0, tour)
	assert.Equal(t, 2, biz)

	tour, biz = count("/api/map?businesses=false")
	assert.Equal(t, 3, tour)
	assert.Equal(t, 0, biz)
}

func TestContactValidationError(t *testing.T) {
	store := &recordingStore{}
	_, r := newTestServer(t, store)

	form := url.Values{"name": {"A"}, "email": {"jane@example.com"}, "message": {"Hello there, this is a test."}}
	w := do(r, http.MethodPost, "/contact", form.Encode(), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Name must be at least 2 characters")
	assert.Contains(t, w.Body.String(), "jane@example.com", "typed values are kept")
	assert.Empty(t, store.inserted)
}

func TestContactAcknowledgedEvenWhenStoreFails(t *testing.T) {
	store := &recordingStore{insertErr: errors.New("relation feedbacks does not exist")}
	srv, r := newTestServer(t, store)

	form := url.Values{"name": {"Jane"}, "email": {"jane@example.com"}, "message": {"Hello there, this is a test."}}
	w := do(r, http.MethodPost, "/contact", form.Encode(), "application/x-www-form-urlencoded")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Thank you for your message!")
	assert.NotContains(t, body, "jane@example.com", "form is cleared")
	assert.Len(t, store.inserted, 1)
	assert.EqualValues(t, 1, srv.feedback.Stats().Failed)
}

func TestAPIFeedback(t *testing.T) {
	store := &recordingStore{}
	_, r := newTestServer(t, store)

	w := do(r, http.MethodPost, "/api/feedback", `{"name":"A","email":"bad","message":"short"}`, "application/json")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verr))
	assert.Len(t, verr.Fields, 3)
	assert.Empty(t, store.inserted)

	w = do(r, http.MethodPost, "/api/feedback", `{"name":"Jane","email":"jane@example.com","message":"Hello there, this is a test."}`, "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	var receipt feedback.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.True(t, receipt.Acknowledged)
	assert.NotEmpty(t, receipt.ID)
	assert.Len(t, store.inserted, 1)

	w = do(r, http.MethodPost, "/api/feedback", `{not json`, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/feedback/stats", "", "")
	var st feedback.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, feedback.Stats{Submitted: 1, Persisted: 1, Rejected: 1}, st)
}

func TestReloadUsesStore(t *testing.T) {
	store, err := database.OpenSQLite(t.TempDir() + "/site.db")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv, r := newTestServer(t, store)

	// empty store: fallback
	w := do(r, http.MethodGet, "/api/news", "", "")
	assert.Contains(t, w.Body.String(), `"total":6`)

	require.NoError(t, store.Seed(context.Background(), []models.Article{
		{ID: "remote", Title: "Remote only", Category: models.CategorySosial, CreatedAt: time.Now()},
	}, nil, nil))

	w = do(r, http.MethodPost, "/api/reload", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"articles":1`)

	_, ok := srv.directory.Get("remote")
	assert.True(t, ok)
	_, ok = srv.directory.Get("3")
	assert.False(t, ok, "remote result replaces the set wholesale")
}

func TestNoRoute(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/nope", "", "").Code)
	w := do(r, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not found")
}

func TestHealthz(t *testing.T) {
	_, r := newTestServer(t, database.NoopStore{})
	w := do(r, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15 Januari 2024", formatDate(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", formatDate(time.Time{}))
}
