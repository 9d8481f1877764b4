package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"ceylon_travel/internal/cache"
	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/domain/normalizer"
	"ceylon_travel/internal/lib/logger/sl"
	"ceylon_travel/internal/metrics"
	"ceylon_travel/internal/repository"
	"ceylon_travel/internal/services/dispatch"
	"ceylon_travel/internal/storage"
	"ceylon_travel/internal/storage/selector"
)

// Сколько последних активных туров показывать, если нет ни одного featured.
const featuredFallbackLimit = 6

type TourFilter struct {
	Status   string
	Featured *bool
	Limit    int
}

type TourService struct {
	log    *slog.Logger
	d      *dispatch.Dispatcher
	remote dispatch.RemoteTable
	files  dispatch.FileTable
	cache  cache.FeaturedCache
}

func NewTourService(
	log *slog.Logger,
	d *dispatch.Dispatcher,
	remote dispatch.RemoteTable,
	files dispatch.FileTable,
	featured cache.FeaturedCache,
) *TourService {
	if featured == nil {
		featured = cache.Nop{}
	}
	return &TourService{
		log:    log,
		d:      d,
		remote: remote,
		files:  files,
		cache:  featured,
	}
}

func (s *TourService) List(ctx context.Context, f TourFilter) ([]models.Tour, dispatch.Outcome, error) {
	const op = "tour_service.List"

	if f.Limit < 0 {
		return nil, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, storage.Validation("limit must not be negative"))
	}
	if f.Status != "" && !validStatus(f.Status) {
		return nil, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, storage.Validation("unknown tour status %q", f.Status))
	}

	// status stays out of SQL: legacy rows keep their original casing
	eq := map[string]any{}
	if f.Featured != nil {
		eq["featured"] = *f.Featured
	}

	tours, out, err := s.list(ctx, op, "tours.list", repository.Filter{Eq: eq})
	if err != nil {
		return nil, out, err
	}

	// file rows are not filtered at all, remote rows only by featured
	filtered := tours[:0]
	for _, t := range tours {
		if f.Status != "" && !strings.EqualFold(t.Status, f.Status) {
			continue
		}
		if f.Featured != nil && t.Featured != *f.Featured {
			continue
		}
		filtered = append(filtered, t)
	}

	if f.Limit > 0 && len(filtered) > f.Limit {
		filtered = filtered[:f.Limit]
	}
	return filtered, out, nil
}

// AllTours is the read-only join source for destination toursCount.
func (s *TourService) AllTours(ctx context.Context) ([]models.Tour, error) {
	tours, _, err := s.list(ctx, "tour_service.AllTours", "tours.all", repository.Filter{})
	return tours, err
}

// Featured returns active featured tours, or the most recent active tours
// when none is featured. Only a non-empty result is cached.
func (s *TourService) Featured(ctx context.Context) ([]models.Tour, dispatch.Outcome, error) {
	const op = "tour_service.Featured"
	log := s.log.With(slog.String("op", op))

	if entry, ok := s.cache.Get(ctx); ok {
		metrics.FeaturedCacheRequests.WithLabelValues("hit").Inc()
		return entry.Value, dispatch.Outcome{}, nil
	}
	metrics.FeaturedCacheRequests.WithLabelValues("miss").Inc()

	tours, out, err := s.list(ctx, op, "tours.featured", repository.Filter{})
	if err != nil {
		return nil, out, err
	}

	featured := make([]models.Tour, 0)
	active := make([]models.Tour, 0)
	for _, t := range tours {
		if t.Status != models.TourActive {
			continue
		}
		active = append(active, t)
		if t.Featured {
			featured = append(featured, t)
		}
	}

	if len(featured) == 0 {
		sort.SliceStable(active, func(i, j int) bool {
			return newer(active[i], active[j])
		})
		if len(active) > featuredFallbackLimit {
			active = active[:featuredFallbackLimit]
		}
		log.Debug("no featured tours, serving recent active ones", slog.Int("count", len(active)))
		featured = active
	}

	if len(featured) > 0 {
		if err := s.cache.Set(ctx, featured); err != nil {
			log.Warn("failed to cache featured tours", sl.Err(err))
		}
	}
	return featured, out, nil
}

func (s *TourService) Get(ctx context.Context, id string) (models.Tour, dispatch.Outcome, error) {
	const op = "tour_service.Get"
	log := s.log.With(slog.String("op", op), slog.String("id", id))

	if !models.ID(id).Valid() {
		return models.Tour{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, storage.Validation("tour id is required"))
	}

	row, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindTours, Op: selector.Read, Name: "tours.get"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (map[string]any, error) {
			return s.remote.Get(ctx, models.ID(id))
		}),
		func(ctx context.Context) (map[string]any, error) {
			return s.files.Get(ctx, models.ID(id))
		},
	)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to get tour", sl.Err(err))
		}
		return models.Tour{}, out, fmt.Errorf("%s: %w", op, err)
	}

	return normalizer.Tour(row), out, nil
}

// Create stores a new tour. Any id in the payload is ignored, the backend
// assigns one.
func (s *TourService) Create(ctx context.Context, t models.Tour) (models.Tour, dispatch.Outcome, error) {
	const op = "tour_service.Create"
	log := s.log.With(slog.String("op", op))

	if err := validate(t); err != nil {
		return models.Tour{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	t.ID = ""
	t.CreatedAt, t.UpdatedAt = nil, nil
	row := normalizer.TourRow(t)

	stored, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindTours, Op: selector.Write, Name: "tours.create"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (map[string]any, error) {
			res, err := s.remote.Insert(ctx, row, nil)
			return res.Row, err
		}),
		func(ctx context.Context) (map[string]any, error) {
			return s.files.Insert(ctx, row)
		},
	)
	if err != nil {
		log.Error("failed to create tour", sl.Err(err))
		return models.Tour{}, out, fmt.Errorf("%s: %w", op, err)
	}

	tour := normalizer.Tour(stored)
	log.Info("tour created",
		slog.String("id", tour.ID.String()),
		slog.String("storage", string(out.Backend)),
		slog.Bool("degraded", out.Degraded),
	)
	return tour, out, nil
}

// Update replaces the tour addressed by the route id. The tour must exist;
// an id inside the payload is ignored.
func (s *TourService) Update(ctx context.Context, id string, t models.Tour) (models.Tour, dispatch.Outcome, error) {
	const op = "tour_service.Update"
	log := s.log.With(slog.String("op", op), slog.String("id", id))

	if !models.ID(id).Valid() {
		return models.Tour{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, storage.Validation("tour id is required"))
	}
	if err := validate(t); err != nil {
		return models.Tour{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	t.ID = models.ID(id)
	t.CreatedAt, t.UpdatedAt = nil, nil
	row := normalizer.TourRow(t)

	stored, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindTours, Op: selector.Write, Name: "tours.update"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (map[string]any, error) {
			res, err := s.remote.Update(ctx, models.ID(id), row, nil)
			return res.Row, err
		}),
		func(ctx context.Context) (map[string]any, error) {
			return s.files.Update(ctx, models.ID(id), row)
		},
	)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to update tour", sl.Err(err))
		}
		return models.Tour{}, out, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("tour updated", slog.String("storage", string(out.Backend)), slog.Bool("degraded", out.Degraded))
	return normalizer.Tour(stored), out, nil
}

func (s *TourService) Delete(ctx context.Context, id string) (dispatch.Outcome, error) {
	const op = "tour_service.Delete"
	log := s.log.With(slog.String("op", op), slog.String("id", id))

	if !models.ID(id).Valid() {
		return dispatch.Outcome{}, fmt.Errorf("%s: %w", op, storage.Validation("tour id is required"))
	}

	_, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindTours, Op: selector.Write, Name: "tours.delete"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.Delete(ctx, models.ID(id))
		}),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.files.Delete(ctx, models.ID(id))
		},
	)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to delete tour", sl.Err(err))
		}
		return out, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("tour deleted", slog.String("storage", string(out.Backend)))
	return out, nil
}

func (s *TourService) list(ctx context.Context, op, name string, f repository.Filter) ([]models.Tour, dispatch.Outcome, error) {
	rows, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindTours, Op: selector.Read, Name: name},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) ([]map[string]any, error) {
			return s.remote.List(ctx, f)
		}),
		s.files.List,
	)
	if err != nil {
		s.log.Error("failed to list tours", slog.String("op", op), sl.Err(err))
		return nil, out, fmt.Errorf("%s: %w", op, err)
	}

	tours := make([]models.Tour, 0, len(rows))
	for _, row := range rows {
		tours = append(tours, normalizer.Tour(row))
	}
	return tours, out, nil
}

func validate(t models.Tour) error {
	if strings.TrimSpace(t.Name) == "" {
		return storage.Validation("name is required")
	}
	if t.Status != "" && !validStatus(t.Status) {
		return storage.Validation("status must be active, draft or archived, got %q", t.Status)
	}
	return nil
}

func validStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.TourActive, models.TourDraft, models.TourArchived:
		return true
	}
	return false
}

// newer orders by created_at descending, undated tours last.
func newer(a, b models.Tour) bool {
	switch {
	case a.CreatedAt == nil:
		return false
	case b.CreatedAt == nil:
		return true
	default:
		return a.CreatedAt.After(*b.CreatedAt)
	}
}
