package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/domain/normalizer"
	"ceylon_travel/internal/lib/logger/sl"
	"ceylon_travel/internal/repository"
	"ceylon_travel/internal/services/dispatch"
	"ceylon_travel/internal/storage"
	"ceylon_travel/internal/storage/selector"
)

// TourLister gives the read-only tour list used for toursCount.
type TourLister interface {
	AllTours(ctx context.Context) ([]models.Tour, error)
}

type DestinationService struct {
	log    *slog.Logger
	d      *dispatch.Dispatcher
	remote dispatch.RemoteTable
	files  dispatch.FileTable
	extras dispatch.ExtrasStore
	tours  TourLister
}

// NewDestinationService: remote may be nil when no remote store is configured.
func NewDestinationService(
	log *slog.Logger,
	d *dispatch.Dispatcher,
	remote dispatch.RemoteTable,
	files dispatch.FileTable,
	extras dispatch.ExtrasStore,
	tours TourLister,
) *DestinationService {
	return &DestinationService{
		log:    log,
		d:      d,
		remote: remote,
		files:  files,
		extras: extras,
		tours:  tours,
	}
}

// List возвращает направления; toursCount считается только по запросу.
func (s *DestinationService) List(ctx context.Context, includeTourCount bool, limit int) ([]models.Destination, dispatch.Outcome, error) {
	const op = "destination_service.List"
	log := s.log.With(slog.String("op", op))

	if limit < 0 {
		return nil, dispatch.Outcome{}, storage.Validation("limit must not be negative")
	}

	rows, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindDestinations, Op: selector.Read, Name: "destinations.list"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) ([]map[string]any, error) {
			return s.remote.List(ctx, repository.Filter{})
		}),
		s.files.List,
	)
	if err != nil {
		log.Error("failed to list destinations", sl.Err(err))
		return nil, out, fmt.Errorf("%s: %w", op, err)
	}

	extras := s.allExtras(ctx, log)

	destinations := make([]models.Destination, 0, len(rows))
	for _, row := range rows {
		d := normalizer.Destination(row)
		destinations = append(destinations, normalizer.MergeExtras(d, extras[d.ID]))
	}

	if limit > 0 && len(destinations) > limit {
		destinations = destinations[:limit]
	}

	if includeTourCount && s.tours != nil {
		tours, err := s.tours.AllTours(ctx)
		if err != nil {
			log.Error("failed to list tours for toursCount", sl.Err(err))
			return nil, out, fmt.Errorf("%s: %w", op, err)
		}
		destinations = normalizer.ToursCount(destinations, tours)
	}

	return destinations, out, nil
}

func (s *DestinationService) Get(ctx context.Context, id string) (models.Destination, dispatch.Outcome, error) {
	const op = "destination_service.Get"
	log := s.log.With(slog.String("op", op), slog.String("id", id))

	if !models.ID(id).Valid() {
		return models.Destination{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, storage.Validation("destination id is required"))
	}

	row, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindDestinations, Op: selector.Read, Name: "destinations.get"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (map[string]any, error) {
			return s.remote.Get(ctx, models.ID(id))
		}),
		func(ctx context.Context) (map[string]any, error) {
			return s.files.Get(ctx, models.ID(id))
		},
	)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to get destination", sl.Err(err))
		}
		return models.Destination{}, out, fmt.Errorf("%s: %w", op, err)
	}

	return s.withExtras(ctx, log, normalizer.Destination(row)), out, nil
}

// Create stores a new destination. An absent id is generated here so the
// same id is used whichever backend ends up storing the record.
func (s *DestinationService) Create(ctx context.Context, d models.Destination) (models.Destination, dispatch.Outcome, error) {
	const op = "destination_service.Create"

	if err := validate(d); err != nil {
		return models.Destination{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}
	if strings.TrimSpace(d.ID) == "" {
		d.ID = uuid.NewString()
	}

	return s.write(ctx, op, "destinations.create", d, func(ctx context.Context, row map[string]any, keep repository.Keeper) (repository.WriteResult, error) {
		return s.remote.Insert(ctx, row, keep)
	}, func(ctx context.Context, row map[string]any) (map[string]any, error) {
		return s.files.Insert(ctx, row)
	})
}

// Save is the full-document upsert behind PUT: the id comes from the body and
// the row is created when it does not exist yet.
func (s *DestinationService) Save(ctx context.Context, d models.Destination) (models.Destination, dispatch.Outcome, error) {
	const op = "destination_service.Save"

	if !models.ID(d.ID).Valid() {
		return models.Destination{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, storage.Validation("destination id is required"))
	}
	if err := validate(d); err != nil {
		return models.Destination{}, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.write(ctx, op, "destinations.save", d, func(ctx context.Context, row map[string]any, keep repository.Keeper) (repository.WriteResult, error) {
		return s.remote.Upsert(ctx, row, keep)
	}, s.files.Upsert)
}

func (s *DestinationService) Delete(ctx context.Context, id string) (dispatch.Outcome, error) {
	const op = "destination_service.Delete"
	log := s.log.With(slog.String("op", op), slog.String("id", id))

	if !models.ID(id).Valid() {
		return dispatch.Outcome{}, fmt.Errorf("%s: %w", op, storage.Validation("destination id is required"))
	}

	_, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindDestinations, Op: selector.Write, Name: "destinations.delete"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.Delete(ctx, models.ID(id))
		}),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.files.Delete(ctx, models.ID(id))
		},
	)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error("failed to delete destination", sl.Err(err))
		}
		return out, fmt.Errorf("%s: %w", op, err)
	}

	s.dropExtras(ctx, log, models.ID(id))

	log.Info("destination deleted", slog.String("storage", string(out.Backend)))
	return out, nil
}

type remoteWrite func(ctx context.Context, row map[string]any, keep repository.Keeper) (repository.WriteResult, error)
type fileWrite func(ctx context.Context, row map[string]any) (map[string]any, error)

func (s *DestinationService) write(ctx context.Context, op, name string, d models.Destination, remote remoteWrite, file fileWrite) (models.Destination, dispatch.Outcome, error) {
	log := s.log.With(slog.String("op", op), slog.String("id", d.ID))
	row := normalizer.DestinationRow(d)

	stored, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindDestinations, Op: selector.Write, Name: name},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (map[string]any, error) {
			res, err := remote(ctx, row, s.keepExtras)
			if err != nil {
				return nil, err
			}
			if len(res.Stripped) == 0 {
				// the remote schema holds every field now, extras would only shadow it
				s.dropExtras(ctx, log, models.ID(d.ID))
			} else {
				log.Warn("remote schema is missing extension columns, kept in extras",
					slog.Any("columns", keys(res.Stripped)))
			}
			return res.Row, nil
		}),
		func(ctx context.Context) (map[string]any, error) {
			stored, err := file(ctx, row)
			if err != nil {
				return nil, err
			}
			// файловая строка хранит все поля, старые extras её бы перекрыли
			s.dropExtras(ctx, log, models.IDFromAny(stored["id"]))
			return stored, nil
		},
	)
	if err != nil {
		log.Error("failed to store destination", sl.Err(err))
		return models.Destination{}, out, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("destination stored",
		slog.String("storage", string(out.Backend)),
		slog.Bool("degraded", out.Degraded),
	)
	return s.withExtras(ctx, log, normalizer.Destination(stored)), out, nil
}

// keepExtras runs before the drift retry. Extras that cannot be persisted
// abort the remote write instead of being dropped.
func (s *DestinationService) keepExtras(ctx context.Context, id models.ID, stripped map[string]any) error {
	if !s.d.FileWritable() {
		return fmt.Errorf("%w: remote schema is missing %v and the filesystem is read-only; migrate the destinations table",
			storage.ErrConfiguration, keys(stripped))
	}
	return s.extras.Put(ctx, id, stripped)
}

func (s *DestinationService) allExtras(ctx context.Context, log *slog.Logger) map[string]map[string]any {
	all, err := s.extras.All(ctx)
	if err != nil {
		log.Warn("failed to read destination extras", sl.Err(err))
		return nil
	}
	return all
}

func (s *DestinationService) withExtras(ctx context.Context, log *slog.Logger, d models.Destination) models.Destination {
	extras, err := s.extras.Get(ctx, models.ID(d.ID))
	if err != nil {
		log.Warn("failed to read destination extras", sl.Err(err))
		return d
	}
	return normalizer.MergeExtras(d, extras)
}

func (s *DestinationService) dropExtras(ctx context.Context, log *slog.Logger, id models.ID) {
	if !s.d.FileWritable() {
		return
	}
	if err := s.extras.Delete(ctx, id); err != nil {
		log.Warn("failed to drop destination extras", sl.Err(err))
	}
}

func validate(d models.Destination) error {
	if strings.TrimSpace(d.Name) == "" {
		return storage.Validation("name is required")
	}
	if math.IsNaN(d.Lat) || d.Lat < -90 || d.Lat > 90 {
		return storage.Validation("lat must be between -90 and 90, got %v", d.Lat)
	}
	if math.IsNaN(d.Lng) || d.Lng < -180 || d.Lng > 180 {
		return storage.Validation("lng must be between -180 and 180, got %v", d.Lng)
	}
	switch d.Status {
	case "", models.DestinationActive, models.DestinationInactive:
	default:
		return storage.Validation("status must be active or inactive, got %q", d.Status)
	}
	return nil
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
