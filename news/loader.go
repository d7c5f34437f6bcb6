package news

import (
	"context"
	"strings"
	"village-profile/models"

	"go.uber.org/zap"
)

type ArticleSource interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
}

// Load reads all articles from src. A failed or empty read falls back to
// the given dataset; the caller never sees an error.
func Load(ctx context.Context, src ArticleSource, fallback []models.Article, logger *zap.Logger) []models.Article {
	articles, err := src.ListArticles(ctx)
	switch {
	case err != nil:
		logger.Warn("Using fallback articles", zap.Error(err))
		articles = fallback
	case len(articles) == 0:
		logger.Info("Store has no articles, using fallback")
		articles = fallback
	default:
		logger.Debug("Articles loaded", zap.Int("count", len(articles)))
	}

	out := make([]models.Article, len(articles))
	for i, a := range articles {
		if strings.TrimSpace(a.Excerpt) == "" {
			a.Excerpt = DeriveExcerpt(a.Content)
		}
		out[i] = a
	}
	return out
}
