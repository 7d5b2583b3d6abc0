package bootstrap

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"doc-research-fe/internal/config"
	"doc-research-fe/internal/controller"
	"doc-research-fe/internal/gateway"
	"doc-research-fe/internal/pkg/logger"
	"doc-research-fe/internal/pkg/serverutils"
	"doc-research-fe/internal/service"
	"doc-research-fe/internal/session"
	"doc-research-fe/internal/view"
	"doc-research-fe/pkg/events"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	LibraryController controller.ILibraryController
	QnAController     controller.IQnAController
	MediaController   controller.IMediaController

	// Middleware
	SessionMiddleware *serverutils.SessionMiddleware

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	// Session store: Redis when configured, in-memory otherwise
	var sessionStore session.Store
	if cfg.App.RedisURL != "" {
		redisStore, err := session.NewRedisStore(cfg.App.RedisURL, sessionTTL, sysLogger)
		if err != nil {
			sysLogger.Warn("bootstrap", "failed to connect redis session store, falling back to memory", map[string]interface{}{"error": err.Error()})
			sessionStore = session.NewMemoryStore(sessionTTL)
		} else {
			sysLogger.Info("bootstrap", "using redis session store", nil)
			sessionStore = redisStore
		}
	} else {
		sessionStore = session.NewMemoryStore(sessionTTL)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Backend Gateway
	backend := gateway.NewClient(cfg.Backend.BaseURL, sysLogger)
	imageResolver := gateway.NewImageResolver(cfg.Backend.DefaultImageURL, sysLogger)

	// 4. Services
	authService := service.NewAuthService(backend, sysLogger)
	libraryService := service.NewLibraryService(backend, pubSub, sysLogger)
	qnaService := service.NewQnAService(backend, sysLogger)
	consumerService := service.NewConsumerService(pubSub, events.TopicDocumentSelected, backend, sessionStore, sysLogger)

	// 5. View + Controllers
	renderer := view.NewRenderer()

	return &Container{
		AuthController:    controller.NewAuthController(authService, renderer),
		LibraryController: controller.NewLibraryController(libraryService, renderer),
		QnAController:     controller.NewQnAController(qnaService, renderer),
		MediaController:   controller.NewMediaController(imageResolver),
		SessionMiddleware: serverutils.NewSessionMiddleware(sessionStore, cfg.Session.Secret, sessionTTL, sysLogger),
		ConsumerService:   consumerService,
		Logger:            sysLogger,
	}
}
