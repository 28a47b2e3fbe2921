package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/go-storefront/internal/cfg"
	v1Http "github.com/DRSN-tech/go-storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/go-storefront/internal/infrastructure/camera"
	"github.com/DRSN-tech/go-storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/go-storefront/internal/repository/authapi"
	fileRepo "github.com/DRSN-tech/go-storefront/internal/repository/file"
	minioRepo "github.com/DRSN-tech/go-storefront/internal/repository/minio"
	redisRepo "github.com/DRSN-tech/go-storefront/internal/repository/redis"
	"github.com/DRSN-tech/go-storefront/internal/repository/storeapi"
	"github.com/DRSN-tech/go-storefront/internal/usecase"
	"github.com/DRSN-tech/go-storefront/pkg/clients"
	"github.com/DRSN-tech/go-storefront/pkg/closer"
	"github.com/DRSN-tech/go-storefront/pkg/e"
	"github.com/DRSN-tech/go-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const shutdownTimeout = 10 * time.Second

// App собирает все слои приложения: репозитории внешних API,
// хранилище токена, объектное хранилище фото, очередь отправки,
// usecase-слой и HTTP-фасад.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv    *v1Http.Server
	worker     *kafka.SubmitWorker
	navigation *usecase.NavigationController
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(2 * time.Second),
	}

	tokenRepo, err := a.initTokenRepo()
	if err != nil {
		log.Errorf(err, "failed to initialize token store")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	photoRepo, err := a.initPhotoRepo()
	if err != nil {
		log.Errorf(err, "failed to initialize photo storage")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	a.worker = kafka.NewSubmitWorker(producer, log, cfg.Kafka.QueueSize, cfg.Kafka.MaxRetries)
	a.closer.Add(func(ctx context.Context) error {
		a.worker.Stop()
		return nil
	})

	catalogRepo := storeapi.NewCatalogRepo(clients.NewHTTPClient(cfg.StoreAPI.Timeout), cfg.StoreAPI, log)
	authRepo := authapi.NewAuthRepo(clients.NewHTTPClient(cfg.AuthAPI.Timeout), cfg.AuthAPI, log)

	catalogUC := usecase.NewCatalogUC(catalogRepo, log)
	cartUC := usecase.NewCartUC(log)
	sessionUC := usecase.NewSessionUC(tokenRepo, authRepo, log)
	proofUC := usecase.NewProofUC(camera.NewExecCamera(cfg.Camera, log), photoRepo, a.worker, log)

	resolveCtx, resolveCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resolveCancel()
	a.navigation = usecase.NewNavigationController(resolveCtx, sessionUC, log)
	a.closer.Add(func(ctx context.Context) error {
		a.navigation.Close()
		return nil
	})

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, a.navigation, log)
	router.Init(catalogUC, cartUC, sessionUC, proofUC)

	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.closer.Add(func(ctx context.Context) error {
		return a.httpSrv.Stop(ctx)
	})

	return a, nil
}

// Run запускает воркер отправки и HTTP-сервер и блокируется
// до сигнала остановки либо фатальной ошибки сервера.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	a.worker.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

// initTokenRepo выбирает хранилище токена по конфигурации:
// файл по умолчанию, redis — когда он доступен рядом.
func (a *App) initTokenRepo() (usecase.TokenRepository, error) {
	switch a.cfg.Session.Backend {
	case "redis":
		redisClient := clients.NewRedisClient(a.cfg.Redis)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pingCancel()
		if err := redisClient.Ping(pingCtx); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		a.closer.Add(func(ctx context.Context) error {
			return redisClient.Client.Close()
		})

		return redisRepo.NewTokenRepo(redisClient, a.cfg.Session, a.logger), nil
	case "file":
		return fileRepo.NewTokenRepo(a.cfg.Session), nil
	default:
		return nil, e.Wrap(a.cfg.Session.Backend, e.ErrUnknownTokenStore)
	}
}

func (a *App) initPhotoRepo() (usecase.PhotoRepository, error) {
	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, a.cfg.Minio.BucketName); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return minioRepo.NewPhotoRepo(minioClient, a.cfg.Minio), nil
}
