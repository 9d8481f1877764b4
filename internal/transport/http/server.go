package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"ceylon_travel/internal/domain/models"
	blog "ceylon_travel/internal/services/blog_service"
	"ceylon_travel/internal/services/dispatch"
	tours "ceylon_travel/internal/services/tour_service"
	"ceylon_travel/internal/storage/selector"
	"ceylon_travel/internal/transport/http/dto/response"

	_ "ceylon_travel/docs"
)

const (
	HeaderStorageBackend  = "X-Storage-Backend"
	HeaderStorageDegraded = "X-Storage-Degraded"
)

type DestinationService interface {
	List(ctx context.Context, includeTourCount bool, limit int) ([]models.Destination, dispatch.Outcome, error)
	Get(ctx context.Context, id string) (models.Destination, dispatch.Outcome, error)
	Create(ctx context.Context, d models.Destination) (models.Destination, dispatch.Outcome, error)
	Save(ctx context.Context, d models.Destination) (models.Destination, dispatch.Outcome, error)
	Delete(ctx context.Context, id string) (dispatch.Outcome, error)
}

type TourService interface {
	List(ctx context.Context, f tours.TourFilter) ([]models.Tour, dispatch.Outcome, error)
	Featured(ctx context.Context) ([]models.Tour, dispatch.Outcome, error)
	Get(ctx context.Context, id string) (models.Tour, dispatch.Outcome, error)
	Create(ctx context.Context, t models.Tour) (models.Tour, dispatch.Outcome, error)
	Update(ctx context.Context, id string, t models.Tour) (models.Tour, dispatch.Outcome, error)
	Delete(ctx context.Context, id string) (dispatch.Outcome, error)
}

type BlogService interface {
	List(ctx context.Context, f blog.BlogFilter) ([]models.BlogPost, dispatch.Outcome, error)
	Get(ctx context.Context, id models.ID) (models.BlogPost, dispatch.Outcome, error)
	Create(ctx context.Context, p models.BlogPost) (models.BlogPost, dispatch.Outcome, error)
	Update(ctx context.Context, p models.BlogPost) (models.BlogPost, dispatch.Outcome, error)
	Delete(ctx context.Context, id models.ID) (dispatch.Outcome, error)
}

type SiteContentService interface {
	Get(ctx context.Context) (models.SiteContent, dispatch.Outcome, error)
	Update(ctx context.Context, partial map[string]any) (models.SiteContent, dispatch.Outcome, error)
}

// BackendReporter is implemented by *dispatch.Dispatcher.
type BackendReporter interface {
	Decide(kind models.Kind, op selector.Op) (selector.Decision, error)
}

type Routers struct {
	log                *slog.Logger
	DestinationService DestinationService
	TourService        TourService
	BlogService        BlogService
	SiteContentService SiteContentService
	Backends           BackendReporter
	featuredMaxAge     time.Duration
}

func NewRouter(
	log *slog.Logger,
	destinationService DestinationService,
	tourService TourService,
	blogService BlogService,
	siteContentService SiteContentService,
	backends BackendReporter,
	featuredMaxAge time.Duration,
) *Routers {
	return &Routers{
		log:                log,
		DestinationService: destinationService,
		TourService:        tourService,
		BlogService:        blogService,
		SiteContentService: siteContentService,
		Backends:           backends,
		featuredMaxAge:     featuredMaxAge,
	}
}

// Health godoc
// @Summary Проверка состояния
// @Description Liveness и выбранный backend для каждого ресурса.
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	type backend struct {
		Read     string `json:"read"`
		Writable bool   `json:"writable"`
		Fallback bool   `json:"fallback"`
		Error    string `json:"error,omitempty"`
	}

	storage := make(map[models.Kind]backend, len(models.Kinds()))
	for _, kind := range models.Kinds() {
		read, _ := r.Backends.Decide(kind, selector.Read)
		b := backend{Read: string(read.Backend), Writable: true, Fallback: read.Backend == selector.Remote && read.FileWritable}
		if _, err := r.Backends.Decide(kind, selector.Write); err != nil {
			b.Writable = false
			b.Error = err.Error()
		}
		storage[kind] = b
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]any{
		"status":  "ok",
		"storage": storage,
	}, ""))
}

// reply writes the envelope plus the storage headers.
func reply(c echo.Context, status int, out dispatch.Outcome, data any, message string) error {
	setStorage(c, out)

	resp := response.SuccessResponse(data, message)
	resp.Storage = string(out.Backend)
	resp.Degraded = out.Degraded
	return c.JSON(status, resp)
}

// setStorage is the only storage report for the bare blog responses.
func setStorage(c echo.Context, out dispatch.Outcome) {
	if out.Backend == "" {
		return
	}
	c.Response().Header().Set(HeaderStorageBackend, string(out.Backend))
	c.Response().Header().Set(HeaderStorageDegraded, strconv.FormatBool(out.Degraded))
}

func bindBody(c echo.Context) (map[string]any, error) {
	raw := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
