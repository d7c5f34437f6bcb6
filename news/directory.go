package news

import (
	"sync"
	"village-profile/models"
)

// Directory owns the article set served by one process. View and like
// counters change only here and are never written back to the store.
type Directory struct {
	mu       sync.RWMutex
	articles []models.Article
	index    map[string]int
	loaded   bool
}

func NewDirectory() *Directory {
	return &Directory{index: make(map[string]int)}
}

// Replace swaps the whole article set and marks the directory loaded.
func (d *Directory) Replace(articles []models.Article) {
	cp := make([]models.Article, len(articles))
	copy(cp, articles)

	index := make(map[string]int, len(cp))
	for i, a := range cp {
		if _, dup := index[a.ID]; !dup {
			index[a.ID] = i
		}
	}

	d.mu.Lock()
	d.articles = cp
	d.index = index
	d.loaded = true
	d.mu.Unlock()
}

// Loaded reports whether Replace has been called. An empty but loaded
// directory is a valid state.
func (d *Directory) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

func (d *Directory) All() []models.Article {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cp := make([]models.Article, len(d.articles))
	copy(cp, d.articles)
	return cp
}

func (d *Directory) Get(id string) (models.Article, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[id]
	if !ok {
		return models.Article{}, false
	}
	return d.articles[i], true
}

func (d *Directory) Search(category models.Category, search string) []models.Article {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Filter(d.articles, category, search)
}

// View counts one read of the article and returns it.
func (d *Directory) View(id string) (models.Article, bool) {
	return d.update(id, func(a *models.Article) { a.Views++ })
}

// Like adds a like, or takes one back when liked is false.
func (d *Directory) Like(id string, liked bool) (models.Article, bool) {
	return d.update(id, func(a *models.Article) {
		if liked {
			a.Likes++
		} else if a.Likes > 0 {
			a.Likes--
		}
	})
}

func (d *Directory) update(id string, fn func(*models.Article)) (models.Article, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, ok := d.index[id]
	if !ok {
		return models.Article{}, false
	}
	fn(&d.articles[i])
	return d.articles[i], true
}

type Stats struct {
	Total      int                     `json:"total"`
	Categories map[models.Category]int `json:"categories"`
	Views      int64                   `json:"views"`
	Likes      int64                   `json:"likes"`
}

func (d *Directory) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	st := Stats{
		Total:      len(d.articles),
		Categories: make(map[models.Category]int),
	}
	for _, a := range d.articles {
		st.Categories[a.Category]++
		st.Views += a.Views
		st.Likes += a.Likes
	}
	return st
}
