package normalizer

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"ceylon_travel/internal/domain/models"
)

var postStatuses = []string{models.PostDraft, models.PostPublished, models.PostArchived}

const wordsPerMinute = 200

// BlogPost maps a raw row to the canonical post. The slug column, when the
// backend has one, is never surfaced.
func BlogPost(raw map[string]any) models.BlogPost {
	if raw == nil {
		raw = map[string]any{}
	}

	p := models.BlogPost{
		ID:          models.IDFromAny(pick(raw, "id")),
		Title:       strings.TrimSpace(str(pick(raw, "title"))),
		Description: str(pick(raw, "description")),
		Excerpt:     str(pick(raw, "excerpt", "summary")),
		Author:      str(pick(raw, "author", "author_name", "authorName")),
		Date:        postDate(pick(raw, "date", "published_at", "publishedAt", "created_at")),
		ReadTime:    str(pick(raw, "read_time", "readTime")),
		Image:       str(pick(raw, "image", "image_url", "imageUrl", "cover_image")),
		Video:       str(pick(raw, "video", "video_url", "videoUrl")),
		Category:    str(pick(raw, "category")),
		Status:      oneOf(str(pick(raw, "status")), postStatuses, models.PostDraft),
		Tags:        strList(pick(raw, "tags")),
		Content:     str(pick(raw, "content", "body")),
	}

	return p
}

// BlogPostRow is the storage row for both backends.
func BlogPostRow(p models.BlogPost) map[string]any {
	row := map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"excerpt":     p.Excerpt,
		"author":      p.Author,
		"date":        p.Date,
		"read_time":   p.ReadTime,
		"image":       p.Image,
		"video":       p.Video,
		"category":    p.Category,
		"status":      oneOf(p.Status, postStatuses, models.PostDraft),
		"tags":        nonNil(p.Tags),
		"content":     p.Content,
	}
	if p.ID.Valid() {
		if n, ok := p.ID.Int(); ok {
			row["id"] = n
		} else {
			row["id"] = string(p.ID)
		}
	}
	return row
}

func postDate(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(time.DateOnly)
	}
	return str(v)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ReadTime estimates reading time at 200 words per minute, at least one minute.
func ReadTime(content string) string {
	words := len(strings.Fields(tagPattern.ReplaceAllString(content, " ")))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Slug lowercases the title, turns separators into hyphens, strips the
// remaining non-alphanumerics and collapses repeated hyphens.
func Slug(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "post"
	}
	return slug
}
