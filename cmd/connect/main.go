package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/citypulse/connect/client"
	"github.com/citypulse/connect/internal/config"
	"github.com/citypulse/connect/internal/infrastructure/database"
	"github.com/citypulse/connect/internal/infrastructure/gateway"
	"github.com/citypulse/connect/internal/infrastructure/repository"
	"github.com/citypulse/connect/internal/present/rest"
	"github.com/citypulse/connect/internal/service"
	"github.com/citypulse/connect/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	catalogClient := client.New(conf.Catalog.BaseURL)
	catalog := gateway.NewCatalogGateway(catalogClient, mc)

	checkinRepo := repository.NewCheckInRepository(db)
	stampRepo := repository.NewStampRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	eventRepo := repository.NewEventRepository(db)
	curatedRepo := repository.NewCuratedRepository(db)

	signal := service.NewSignalService(rdb)

	credibility := usecase.NewCredibilityUsecase(stampRepo, profileRepo)
	ledger := usecase.NewLedgerUsecase(checkinRepo, credibility, catalog, signal)
	presence := usecase.NewPresenceUsecase(checkinRepo, catalog)
	feed := usecase.NewFeedUsecase(presence, checkinRepo, activityRepo, eventRepo, curatedRepo, catalog)
	engagement := usecase.NewEngagementUsecase(activityRepo, eventRepo)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if conf.Server.EnableTrace {
		shutdown, err := setupTracing(conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer shutdown()
		e.Use(otelecho.Middleware("connect"))
	}

	handler := rest.NewHandler(ledger, presence, credibility, feed, engagement, signal)
	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracing(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName("connect")),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Warn("failed to shut down tracer provider", slog.String("error", err.Error()))
		}
	}, nil
}
