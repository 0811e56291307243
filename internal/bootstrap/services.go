package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/schoolsite-ui/config"
	"github.com/target/schoolsite-ui/internal/adapters/backend"
	redisadapter "github.com/target/schoolsite-ui/internal/adapters/redis"
	"github.com/target/schoolsite-ui/internal/ports"
	"github.com/target/schoolsite-ui/internal/service"
)

// ServiceContainer holds every service the HTTP layer needs.
type ServiceContainer struct {
	Sessions   *service.SessionService
	Auth       *service.AuthService
	Pages      *service.PageRepository
	News       *service.NewsRepository
	Gallery    *service.GalleryRepository
	Messages   *service.MessageRepository
	SchoolInfo *service.SchoolInfoRepository
	Dashboard  *service.DashboardService
	Public     *service.PublicService
	Store      *redisadapter.SessionStore
}

// ServiceDeps contains dependencies for creating services.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	// Store overrides the Redis-backed session store (tests).
	Store  ports.SessionStore
	Logger *slog.Logger
}

// NewServices wires the session store, both API clients and the resource services.
// The admin repositories share the authenticated client; the public site uses
// the public client only.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		container ServiceContainer
		store     = deps.Store
	)
	if store == nil {
		if deps.RedisClient == nil {
			return ServiceContainer{}, errors.New("redis client is required")
		}
		container.Store = redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, cfg.Session.KeyPrefix)
		store = container.Store
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Store:     store,
		Retention: cfg.Session.Retention,
		Logger:    logger,
	})

	clientCfg := backend.Config{
		BaseURL:     cfg.Backend.BaseURL,
		Timeout:     cfg.Backend.Timeout,
		UserAgent:   cfg.Backend.UserAgent,
		MessagePath: cfg.Backend.MessagePath,
		Logger:      logger,
	}
	public, err := backend.NewPublic(clientCfg)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create public API client: %w", err)
	}
	admin, err := backend.NewAuthenticated(clientCfg, sessions)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create authenticated API client: %w", err)
	}

	auth, err := service.NewAuthService(service.AuthServiceOptions{
		Public:      public,
		Admin:       admin,
		Sessions:    sessions,
		TokenPath:   cfg.Backend.TokenPath,
		ProfilePath: cfg.Backend.ProfilePath,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create auth service: %w", err)
	}

	container.Sessions = sessions
	container.Auth = auth
	container.Pages = service.NewPageRepository(admin)
	container.News = service.NewNewsRepository(admin)
	container.Gallery = service.NewGalleryRepository(admin)
	container.Messages = service.NewMessageRepository(admin)
	container.SchoolInfo = service.NewSchoolInfoRepository(admin)
	container.Dashboard = service.NewDashboardService(service.DashboardServiceOptions{
		Pages:    container.Pages,
		News:     container.News,
		Gallery:  container.Gallery,
		Messages: container.Messages,
	})
	container.Public = service.NewPublicService(service.PublicServiceOptions{
		Client:        public,
		NewsPageSize:  cfg.Content.NewsPageSize,
		HomeNewsLimit: cfg.Content.HomeNewsLimit,
	})
	return container, nil
}
