package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ceylon_travel/internal/domain/models"
)

func TestBlogPost_Normalize(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want models.BlogPost
	}{
		{
			name: "file row with numeric id",
			raw: map[string]any{
				"id":       float64(3),
				"title":    "Whale watching in Mirissa",
				"readTime": "4 min read",
				"status":   "published",
				"tags":     []any{"wildlife", "", "coast"},
			},
			want: models.BlogPost{
				ID:       "3",
				Title:    "Whale watching in Mirissa",
				ReadTime: "4 min read",
				Status:   models.PostPublished,
				Tags:     []string{"wildlife", "coast"},
			},
		},
		{
			name: "remote row with opaque id and slug",
			raw: map[string]any{
				"id":        "9b2f6c1e-0b8a-4c1e-9e3a-1f5d2a7c8b90",
				"title":     "Tea country",
				"slug":      "tea-country",
				"read_time": "2 min read",
				"tags":      "not a list",
				"status":    "unknown",
			},
			want: models.BlogPost{
				ID:       "9b2f6c1e-0b8a-4c1e-9e3a-1f5d2a7c8b90",
				Title:    "Tea country",
				ReadTime: "2 min read",
				Status:   models.PostDraft,
				Tags:     []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlogPost(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, BlogPost(BlogPostRow(got)))
		})
	}
}

func TestBlogPostRow_NumericID(t *testing.T) {
	row := BlogPostRow(models.BlogPost{ID: "4"})
	assert.Equal(t, int64(4), row["id"])

	row = BlogPostRow(models.BlogPost{ID: "0"})
	assert.NotContains(t, row, "id")
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, "1 min read", ReadTime(""))
	assert.Equal(t, "1 min read", ReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, "2 min read", ReadTime(strings.Repeat("word ", 201)))
	assert.Equal(t, "1 min read", ReadTime("<p>"+strings.Repeat("<b>x</b> ", 150)+"</p>"))
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Hello World!":                 "hello-world",
		"  Don't   miss -- Ella's Rock": "dont-miss-ellas-rock",
		"Top 10 beaches (2024)":        "top-10-beaches-2024",
		"!!!":                          "post",
	}

	for title, want := range tests {
		assert.Equal(t, want, Slug(title), title)
	}
}
