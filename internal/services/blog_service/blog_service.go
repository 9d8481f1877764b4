package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/domain/normalizer"
	"ceylon_travel/internal/lib/logger/sl"
	"ceylon_travel/internal/repository"
	"ceylon_travel/internal/services/dispatch"
	"ceylon_travel/internal/storage"
	"ceylon_travel/internal/storage/selector"
)

type BlogFilter struct {
	Status   string
	Category string
}

type BlogService struct {
	log    *slog.Logger
	d      *dispatch.Dispatcher
	remote dispatch.RemoteTable
	files  dispatch.FileTable
	now    func() time.Time
}

func NewBlogService(log *slog.Logger, d *dispatch.Dispatcher, remote dispatch.RemoteTable, files dispatch.FileTable) *BlogService {
	return &BlogService{
		log:    log,
		d:      d,
		remote: remote,
		files:  files,
		now:    time.Now,
	}
}

func (s *BlogService) List(ctx context.Context, f BlogFilter) ([]models.BlogPost, dispatch.Outcome, error) {
	const op = "blog_service.List"
	log := s.log.With(slog.String("op", op))

	rows, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindBlog, Op: selector.Read, Name: "blog.list"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) ([]map[string]any, error) {
			// фильтры регистронезависимые, поэтому применяются ниже, а не в SQL
			return s.remote.List(ctx, repository.Filter{})
		}),
		s.files.List,
	)
	if err != nil {
		log.Error("failed to list blog posts", sl.Err(err))
		return nil, out, fmt.Errorf("%s: %w", op, err)
	}

	posts := make([]models.BlogPost, 0, len(rows))
	for _, row := range rows {
		p := normalizer.BlogPost(row)
		if f.Status != "" && !strings.EqualFold(p.Status, f.Status) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		posts = append(posts, p)
	}
	return posts, out, nil
}

func (s *BlogService) Get(ctx context.Context, id models.ID) (models.BlogPost, dispatch.Outcome, error) {
	const op = "blog_service.Get"
	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	if err := guard(id); err != nil {
		return models.BlogPost{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	row, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindBlog, Op: selector.Read, Name: "blog.get"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (map[string]any, error) {
			return s.remote.Get(ctx, id)
		}),
		func(ctx context.Context) (map[string]any, error) {
			return s.files.Get(ctx, id)
		},
	)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to get blog post", sl.Err(err))
		}
		return models.BlogPost{}, out, fmt.Errorf("%s: %w", op, err)
	}

	return normalizer.BlogPost(row), out, nil
}

// Create stores a new post. An empty id is assigned by the backend; an id
// that is present but zero means the client is stale and is rejected by the
// caller before we get here.
func (s *BlogService) Create(ctx context.Context, p models.BlogPost) (models.BlogPost, dispatch.Outcome, error) {
	const op = "blog_service.Create"
	log := s.log.With(slog.String("op", op))

	if p.ID != "" {
		if err := guard(p.ID); err != nil {
			return models.BlogPost{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := validate(p); err != nil {
		return models.BlogPost{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	row := normalizer.BlogPostRow(s.fill(p))

	stored, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindBlog, Op: selector.Write, Name: "blog.create"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (map[string]any, error) {
			res, err := s.remote.Insert(ctx, row, nil)
			return res.Row, err
		}),
		func(ctx context.Context) (map[string]any, error) {
			return s.files.Insert(ctx, row)
		},
	)
	if err != nil {
		log.Error("failed to create blog post", sl.Err(err))
		return models.BlogPost{}, out, fmt.Errorf("%s: %w", op, err)
	}

	post := normalizer.BlogPost(stored)
	log.Info("blog post created",
		slog.String("id", post.ID.String()),
		slog.String("storage", string(out.Backend)),
		slog.Bool("degraded", out.Degraded),
	)
	return post, out, nil
}

// Update replaces the post addressed by the id in the body.
func (s *BlogService) Update(ctx context.Context, p models.BlogPost) (models.BlogPost, dispatch.Outcome, error) {
	const op = "blog_service.Update"
	log := s.log.With(slog.String("op", op), slog.String("id", p.ID.String()))

	if err := guard(p.ID); err != nil {
		return models.BlogPost{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := validate(p); err != nil {
		return models.BlogPost{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	row := normalizer.BlogPostRow(s.fill(p))

	stored, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindBlog, Op: selector.Write, Name: "blog.update"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (map[string]any, error) {
			res, err := s.remote.Update(ctx, p.ID, row, nil)
			return res.Row, err
		}),
		func(ctx context.Context) (map[string]any, error) {
			return s.files.Update(ctx, p.ID, row)
		},
	)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to update blog post", sl.Err(err))
		}
		return models.BlogPost{}, out, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("blog post updated", slog.String("storage", string(out.Backend)), slog.Bool("degraded", out.Degraded))
	return normalizer.BlogPost(stored), out, nil
}

func (s *BlogService) Delete(ctx context.Context, id models.ID) (dispatch.Outcome, error) {
	const op = "blog_service.Delete"
	log := s.log.With(slog.String("op", op), slog.String("id", id.String()))

	if err := guard(id); err != nil {
		return dispatch.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	_, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindBlog, Op: selector.Write, Name: "blog.delete"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.Delete(ctx, id)
		}),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.files.Delete(ctx, id)
		},
	)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to delete blog post", sl.Err(err))
		}
		return out, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("blog post deleted", slog.String("storage", string(out.Backend)))
	return out, nil
}

// fill подставляет значения по умолчанию: время чтения, статус, дату.
func (s *BlogService) fill(p models.BlogPost) models.BlogPost {
	if strings.TrimSpace(p.ReadTime) == "" {
		p.ReadTime = normalizer.ReadTime(p.Content)
	}
	if p.Status == "" {
		p.Status = models.PostDraft
	}
	if strings.TrimSpace(p.Date) == "" {
		p.Date = s.now().Format(time.DateOnly)
	}
	return p
}

// guard rejects ids a stale client sends: empty and literal zero.
func guard(id models.ID) error {
	if !id.Valid() {
		return storage.Validation("blog post id must be non-empty and non-zero, got %q", id.String())
	}
	return nil
}

func validate(p models.BlogPost) error {
	if strings.TrimSpace(p.Title) == "" {
		return storage.Validation("title is required")
	}
	switch p.Status {
	case "", models.PostDraft, models.PostPublished, models.PostArchived:
	default:
		return storage.Validation("status must be Draft, Published or Archived, got %q", p.Status)
	}
	return nil
}
