package models

import "time"

type Category string

const (
	CategoryAll           Category = "all"
	CategoryPertanian     Category = "pertanian"
	CategorySosial        Category = "sosial"
	CategoryBudaya        Category = "budaya"
	CategoryEkonomi       Category = "ekonomi"
	CategoryPendidikan    Category = "pendidikan"
	CategoryLingkungan    Category = "lingkungan"
	CategoryInfrastruktur Category = "infrastruktur"
)

// Article is a news item shown on the news pages. Views and Likes are the
// only fields that change after loading, and only in memory.
type Article struct {
	ID        string    `json:"id" gorm:"primaryKey" bson:"_id" yaml:"id"`
	Title     string    `json:"title" bson:"title" yaml:"title"`
	Excerpt   string    `json:"excerpt" bson:"excerpt" yaml:"excerpt"`
	Content   string    `json:"content" bson:"content" yaml:"content"`
	ImageURL  string    `json:"image_url" bson:"image_url" yaml:"image_url"`
	Author    string    `json:"author" bson:"author" yaml:"author"`
	Category  Category  `json:"category" gorm:"index" bson:"category" yaml:"category"`
	Views     int64     `json:"views" bson:"views" yaml:"views"`
	Likes     int64     `json:"likes" bson:"likes" yaml:"likes"`
	Featured  bool      `json:"featured" bson:"featured" yaml:"featured"`
	CreatedAt time.Time `json:"created_at" gorm:"index" bson:"created_at" yaml:"created_at"`
}

func (Article) TableName() string {
	return "news_articles"
}
