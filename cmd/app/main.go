package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/microblog-service/internal/config"
	"github.com/BloggingApp/microblog-service/internal/events"
	"github.com/BloggingApp/microblog-service/internal/handler"
	"github.com/BloggingApp/microblog-service/internal/langdetect"
	"github.com/BloggingApp/microblog-service/internal/metrics"
	"github.com/BloggingApp/microblog-service/internal/rabbitmq"
	"github.com/BloggingApp/microblog-service/internal/repository"
	"github.com/BloggingApp/microblog-service/internal/repository/graph"
	"github.com/BloggingApp/microblog-service/internal/repository/memory"
	"github.com/BloggingApp/microblog-service/internal/repository/postgres"
	"github.com/BloggingApp/microblog-service/internal/service"
	"github.com/BloggingApp/microblog-service/internal/translate"
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/middleware/http"
	httpreporter "github.com/openzipkin/zipkin-go/reporter/http"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.LoadEnv(".env"); err != nil {
		logger.Sugar().Fatalf("failed to load environment variables: %s", err.Error())
	}

	cfg, err := config.Load("./configs", "./")
	if err != nil {
		logger.Sugar().Fatalf("failed to initialize yaml config: %s", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Sugar().Fatalf("failed to connect to redis: %s", err.Error())
	}
	defer rdb.Close()

	repo, closeStorage, err := initStorage(ctx, cfg, rdb)
	if err != nil {
		logger.Sugar().Fatalf("failed to initialize storage: %s", err.Error())
	}
	defer closeStorage()

	if cfg.GraphDriver == "neo4j" {
		driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			logger.Sugar().Fatalf("failed to initialize graph store: %s", err.Error())
		}
		defer driver.Close(context.Background())

		repo.WithFollowers(graph.NewFollowerRepo(driver, repo.Users))
	}

	publisher, err := initPublisher(cfg)
	if err != nil {
		logger.Sugar().Fatalf("failed to initialize %s broker: %s", cfg.BrokerDriver, err.Error())
	}
	defer publisher.Close()

	httpClient, serverMiddleware, closeTracer := initTracer(cfg, logger)
	defer closeTracer()

	var translator translate.Translator = translate.NewMicrosoftTranslator(httpClient, cfg.TranslatorURL, cfg.TranslatorKey, cfg.TranslatorRegion)
	if cfg.MemcachedAddr != "" {
		translator = translate.NewCachedTranslator(translator, memcache.New(cfg.MemcachedAddr), int32(cfg.TranslationTTL.Seconds()), func(err error) {
			logger.Sugar().Errorf("translation cache: %s", err.Error())
		})
	}

	services := service.New(service.Config{
		PostsPerPage:  cfg.PostsPerPage,
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		ResetSecret:   cfg.ResetSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		ResetTTL:      cfg.ResetTTL,
	}, service.Deps{
		Logger:     logger,
		Repo:       repo,
		Publisher:  publisher,
		Detector:   langdetect.NewWhatlang(),
		Translator: translator,
	})

	handlers := handler.New(services, logger, metrics.New(), cfg.ClientOrigin)

	var httpHandler http.Handler = handlers.InitRoutes()
	if serverMiddleware != nil {
		httpHandler = serverMiddleware(httpHandler)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Sugar().Infof("server is starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("failed to start server: %s", err.Error())
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down server: %s", err.Error())
	}
}

func initStorage(ctx context.Context, cfg *config.Config, rdb *redis.Client) (*repository.Repository, func(), error) {
	if cfg.StorageDriver == "memory" {
		return repository.NewMemory(memory.New(), rdb), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		pool.Close()
		return nil, nil, err
	}
	_ = db.Close()

	return repository.NewPostgres(pool, rdb), pool.Close, nil
}

func initPublisher(cfg *config.Config) (events.Publisher, error) {
	switch cfg.BrokerDriver {
	case "rabbitmq":
		conn, err := rabbitmq.Dial(cfg.RabbitMQURL, events.Queues)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case "nats":
		conn, err := events.NewNATS(cfg.NatsURL)
		if err != nil {
			return nil, err
		}
		return conn, nil
	default:
		return events.Noop{}, nil
	}
}

// initTracer returns a traced HTTP client for outgoing calls and the server
// middleware. Without a zipkin url the plain default client is used.
func initTracer(cfg *config.Config, logger *zap.Logger) (translate.HTTPDoer, func(http.Handler) http.Handler, func()) {
	if cfg.ZipkinURL == "" {
		return http.DefaultClient, nil, func() {}
	}

	reporter := httpreporter.NewReporter(cfg.ZipkinURL)
	closeReporter := func() { _ = reporter.Close() }

	endpoint, err := zipkin.NewEndpoint("microblog-service", "localhost:"+cfg.Port)
	if err != nil {
		logger.Sugar().Errorf("unable to create local endpoint: %s", err.Error())
		return http.DefaultClient, nil, closeReporter
	}

	tracer, err := zipkin.NewTracer(reporter, zipkin.WithLocalEndpoint(endpoint))
	if err != nil {
		logger.Sugar().Errorf("unable to create tracer: %s", err.Error())
		return http.DefaultClient, nil, closeReporter
	}

	serverMiddleware := zipkinhttp.NewServerMiddleware(tracer, zipkinhttp.TagResponseSize(true))

	client, err := zipkinhttp.NewClient(tracer, zipkinhttp.ClientTrace(true))
	if err != nil {
		logger.Sugar().Errorf("unable to create client: %s", err.Error())
		return http.DefaultClient, serverMiddleware, closeReporter
	}

	return client, serverMiddleware, closeReporter
}
