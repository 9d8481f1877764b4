package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/domain/normalizer"
	"ceylon_travel/internal/lib/logger/sl"
	"ceylon_travel/internal/services/dispatch"
	"ceylon_travel/internal/storage"
	"ceylon_travel/internal/storage/selector"
)

// SiteContentService отдает defaults ⊕ сохраненный документ. Сохраняется
// только переопределение, поэтому новые поля по умолчанию не требуют миграций.
type SiteContentService struct {
	log    *slog.Logger
	d      *dispatch.Dispatcher
	remote dispatch.DocumentStore
	file   dispatch.DocumentStore
}

func NewSiteContentService(log *slog.Logger, d *dispatch.Dispatcher, remote, file dispatch.DocumentStore) *SiteContentService {
	return &SiteContentService{
		log:    log,
		d:      d,
		remote: remote,
		file:   file,
	}
}

func (s *SiteContentService) Get(ctx context.Context) (models.SiteContent, dispatch.Outcome, error) {
	const op = "site_content_service.Get"
	log := s.log.With(slog.String("op", op))

	doc, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindSiteContent, Op: selector.Read, Name: "site_content.get"},
		dispatch.Remote(s.remote != nil, func(ctx context.Context) (map[string]any, error) {
			return s.remote.Load(ctx)
		}),
		s.file.Load,
	)
	if err != nil {
		log.Error("failed to load site content", sl.Err(err))
		return nil, out, fmt.Errorf("%s: %w", op, err)
	}

	return normalizer.WithDefaults(normalizer.SiteContent(doc)), out, nil
}

// Update merges partial into the persisted document, not into the defaults,
// so the stored override stays as small as the editors made it.
func (s *SiteContentService) Update(ctx context.Context, partial map[string]any) (models.SiteContent, dispatch.Outcome, error) {
	const op = "site_content_service.Update"
	log := s.log.With(slog.String("op", op))

	if len(partial) == 0 {
		return nil, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, storage.Validation("site content update is empty"))
	}
	for section, v := range partial {
		if _, ok := v.(map[string]any); !ok {
			return nil, dispatch.Outcome{}, fmt.Errorf("%s: %w", op, storage.Validation("section %q must be an object", section))
		}
	}

	merge := func(store dispatch.DocumentStore) dispatch.Func[map[string]any] {
		return func(ctx context.Context) (map[string]any, error) {
			persisted, err := store.Load(ctx)
			if err != nil {
				return nil, err
			}
			merged := normalizer.DeepMerge(persisted, partial)
			if err := store.Save(ctx, merged); err != nil {
				return nil, err
			}
			return merged, nil
		}
	}

	var remote dispatch.Func[map[string]any]
	if s.remote != nil {
		remote = merge(s.remote)
	}

	doc, out, err := dispatch.Run(ctx, s.d,
		dispatch.Request{Kind: models.KindSiteContent, Op: selector.Write, Name: "site_content.update"},
		remote,
		merge(s.file),
	)
	if err != nil {
		log.Error("failed to save site content", sl.Err(err))
		return nil, out, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("site content saved",
		slog.Any("sections", sectionNames(partial)),
		slog.String("storage", string(out.Backend)),
		slog.Bool("degraded", out.Degraded),
	)
	return normalizer.WithDefaults(normalizer.SiteContent(doc)), out, nil
}

func sectionNames(doc map[string]any) []string {
	names := make([]string, 0, len(doc))
	for k := range doc {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
