package news

import (
	"strings"
	"village-profile/models"
)

type CategoryOption struct {
	Value models.Category
	Label string
}

// Categories lists the filter options in display order, "all" first.
var Categories = []CategoryOption{
	{models.CategoryAll, "Semua Berita"},
	{models.CategoryPertanian, "Pertanian"},
	{models.CategorySosial, "Sosial"},
	{models.CategoryBudaya, "Budaya"},
	{models.CategoryEkonomi, "Ekonomi"},
	{models.CategoryPendidikan, "Pendidikan"},
	{models.CategoryLingkungan, "Lingkungan"},
	{models.CategoryInfrastruktur, "Infrastruktur"},
}

// ParseCategory maps user input to a known category. Anything unknown
// means no category filter.
func ParseCategory(s string) models.Category {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if string(c.Value) == s {
			return c.Value
		}
	}
	return models.CategoryAll
}

func CategoryLabel(c models.Category) string {
	for _, opt := range Categories {
		if opt.Value == c {
			return opt.Label
		}
	}
	return string(c)
}
