// Package news holds the article directory and its search and category
// filtering.
package news

import (
	"strings"
	"village-profile/models"
)

// Filter returns the articles matching category and search, in input order.
// Category "all" (or empty) and a blank search disable their respective
// conditions. The search is a case-insensitive substring match against the
// title or the excerpt. The input slice is never modified.
func Filter(articles []models.Article, category models.Category, search string) []models.Article {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if category != "" && category != models.CategoryAll && a.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Excerpt), search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Featured picks the article to headline a listing: the first one flagged
// Featured, otherwise the most recently created one. Position in the slice
// only breaks ties.
func Featured(articles []models.Article) (models.Article, bool) {
	if len(articles) == 0 {
		return models.Article{}, false
	}

	best := -1
	for i, a := range articles {
		if a.Featured {
			return a, true
		}
		if best < 0 || a.CreatedAt.After(articles[best].CreatedAt) {
			best = i
		}
	}
	return articles[best], true
}

// Without returns articles minus the one with the given id.
func Without(articles []models.Article, id string) []models.Article {
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}
