package app

import (
	"context"
	"log/slog"

	httpapp "ceylon_travel/internal/app/http"
	"ceylon_travel/internal/cache"
	"ceylon_travel/internal/config"
	"ceylon_travel/internal/domain/models"
	"ceylon_travel/internal/lib/logger/sl"
	"ceylon_travel/internal/repository"
	blog "ceylon_travel/internal/services/blog_service"
	destinations "ceylon_travel/internal/services/destination_service"
	"ceylon_travel/internal/services/dispatch"
	content "ceylon_travel/internal/services/site_content_service"
	tours "ceylon_travel/internal/services/tour_service"
	"ceylon_travel/internal/storage/filestorage"
	"ceylon_travel/internal/storage/postgresql"
	redisapp "ceylon_travel/internal/storage/redis"
	"ceylon_travel/internal/storage/selector"
	httprouters "ceylon_travel/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
	log        *slog.Logger
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

func New(log *slog.Logger, cfg *config.Config) *App {
	const op = "app.New"
	appLog := log.With(slog.String("op", op))

	in := SelectorInput(cfg)

	var (
		destRemote    dispatch.RemoteTable
		tourRemote    dispatch.RemoteTable
		blogRemote    dispatch.RemoteTable
		contentRemote dispatch.DocumentStore
		storage       *postgresql.Storage
	)

	if selector.RemoteConfigured(in) {
		var err error
		storage, err = postgresql.New(context.Background(), postgresql.Config{
			URL:        cfg.Remote.URL,
			ServiceKey: cfg.Remote.ServiceKey,
			Timeout:    cfg.Remote.Timeout,
			MaxConns:   cfg.Remote.MaxConns,
		})
		if err != nil {
			// the remote stays selected, every call reports it as unavailable
			appLog.Error("failed to set up remote store", sl.Err(err))
		} else {
			if err := storage.Ping(context.Background()); err != nil {
				appLog.Warn("remote store is not reachable yet", sl.Err(err))
			}

			repo := repository.NewRepository(storage.Pool(), cfg.Remote.Timeout)
			destRemote = repo.Destinations
			tourRemote = repo.Tours
			blogRemote = repo.Blog
			contentRemote = repo.SiteContent
		}
	} else {
		appLog.Warn("remote store is not configured, file store is authoritative",
			slog.Bool("restricted_fs", in.RestrictedFS))
	}

	var redisClient *redisapp.Client
	if cfg.FeaturedCache.Driver == cache.DriverRedis {
		redisClient = redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err := redisClient.HealthCheck(context.Background()); err != nil {
			appLog.Warn("redis is not reachable, featured cache will miss", sl.Err(err))
		}
	}

	featured, err := cache.New(cfg.FeaturedCache.Driver, cfg.FeaturedCache.TTL, redisClient)
	if err != nil {
		panic(err)
	}

	files := filestorage.New(cfg.FileStore.Dir)
	d := dispatch.New(log, in)

	tourService := tours.NewTourService(log, d, tourRemote,
		files.Collection(filestorage.FileTours, filestorage.UUIDs), featured)
	destinationService := destinations.NewDestinationService(log, d, destRemote,
		files.Collection(filestorage.FileDestinations, filestorage.UUIDs),
		files.Extras(filestorage.FileDestinationExtras), tourService)
	blogService := blog.NewBlogService(log, d, blogRemote,
		files.Collection(filestorage.FileBlogPosts, filestorage.NumericIDs))
	contentService := content.NewSiteContentService(log, d, contentRemote,
		files.Document(filestorage.FileSiteContent))

	routers := httprouters.NewRouter(log, destinationService, tourService, blogService, contentService, d, cfg.FeaturedCache.TTL)

	server := httpapp.New(log, cfg.Auth.JWTSecret, cfg.HTTP.Host, cfg.HTTP.Port, cfg.HTTP.Timeout, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		log:        log,
		storage:    storage,
		redis:      redisClient,
	}
}

// SelectorInput is the configuration snapshot the backend decision uses.
func SelectorInput(cfg *config.Config) selector.Input {
	resources := make([]models.Kind, 0, len(cfg.Remote.Resources))
	for _, r := range cfg.Remote.Resources {
		resources = append(resources, models.Kind(r))
	}

	return selector.Input{
		RemoteURL:    cfg.Remote.URL,
		ServiceKey:   cfg.Remote.ServiceKey,
		HostPattern:  cfg.Remote.HostPattern,
		MinKeyLength: cfg.Remote.MinKeyLength,
		RestrictedFS: cfg.FileStore.Restricted,
		Resources:    resources,
	}
}

func (a *App) Stop() {
	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", sl.Err(err))
	}
	if a.storage != nil {
		a.storage.Stop()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}
