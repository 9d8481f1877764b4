package models

const (
	PostDraft     = "Draft"
	PostPublished = "Published"
	PostArchived  = "Archived"
)

// BlogPost - канонический пост. ID может быть числом (файловое хранилище)
// или непрозрачной строкой (удалённое хранилище).
type BlogPost struct {
	ID          ID       `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Excerpt     string   `json:"excerpt"`
	Author      string   `json:"author"`
	Date        string   `json:"date"`
	ReadTime    string   `json:"readTime"`
	Image       string   `json:"image"`
	Video       string   `json:"video,omitempty"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	Content     string   `json:"content"`
}
