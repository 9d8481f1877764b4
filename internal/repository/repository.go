package repository

import (
	"time"

	"ceylon_travel/internal/domain/normalizer"
)

// Имена таблиц в удаленном хранилище
const (
	TableDestinations = "destinations"
	TableTours        = "tours"
	TableBlogPosts    = "blog_posts"
	TableSiteContent  = "site_content"
)

var timestampColumns = []string{"created_at", "updated_at"}

// Repository собирает репозитории всех ресурсов поверх одного пула.
type Repository struct {
	Destinations *TableRepo
	Tours        *TableRepo
	Blog         *TableRepo
	SiteContent  *SiteContentRepo
}

func NewRepository(db Querier, timeout time.Duration) *Repository {
	return &Repository{
		Destinations: NewDestinationRepo(db, timeout),
		Tours:        NewTourRepo(db, timeout),
		Blog:         NewBlogRepo(db, timeout),
		SiteContent:  NewSiteContentRepo(db, timeout),
	}
}

// NewDestinationRepo: things_to_do and gallery were added after the first
// schema and may still be missing remotely.
func NewDestinationRepo(db Querier, timeout time.Duration) *TableRepo {
	return NewTableRepo(db, Table{
		Name:             TableDestinations,
		ExtensionColumns: normalizer.ExtensionColumns,
		OptionalColumns:  timestampColumns,
	}, timeout)
}

func NewTourRepo(db Querier, timeout time.Duration) *TableRepo {
	return NewTableRepo(db, Table{
		Name:            TableTours,
		OptionalColumns: timestampColumns,
	}, timeout)
}

// NewBlogRepo fills the slug column on insert. Schemas without a slug
// column simply lose it on the drift retry.
func NewBlogRepo(db Querier, timeout time.Duration) *TableRepo {
	return NewTableRepo(db, Table{
		Name:            TableBlogPosts,
		OptionalColumns: append([]string{"slug"}, timestampColumns...),
		BeforeInsert: func(row map[string]any) {
			if _, ok := row["slug"]; ok {
				return
			}
			title, _ := row["title"].(string)
			row["slug"] = normalizer.Slug(title)
		},
	}, timeout)
}
