package main

import (
	"context"
	"flag"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/foodgram-project/foodgram-server/internal/config"
	"github.com/foodgram-project/foodgram-server/internal/infra/blob"
	"github.com/foodgram-project/foodgram-server/internal/infra/database"
	"github.com/foodgram-project/foodgram-server/internal/infra/repository"
	"github.com/foodgram-project/foodgram-server/internal/present/rest"
	"github.com/foodgram-project/foodgram-server/internal/present/rest/middleware"
	"github.com/foodgram-project/foodgram-server/internal/service"
	"github.com/foodgram-project/foodgram-server/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if conf.Server.EnableTrace {
		shutdown, err := setupTraceProvider(conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to set up trace provider: " + err.Error())
		}
		defer shutdown()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)

	images, err := blob.NewStore(conf.Media.Root, conf.Media.URL)
	if err != nil {
		panic("failed to initialize media store: " + err.Error())
	}

	catalogRepo := repository.NewCatalogRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	userRepo := repository.NewUserRepository(db)

	catalogUC := usecase.NewCatalogUsecase(catalogRepo)
	recipeUC := usecase.NewRecipeUsecase(recipeRepo, catalogRepo, relationRepo, subscriptionRepo, userRepo, images)
	relationUC := usecase.NewRelationUsecase(recipeRepo, relationRepo)
	shoppingListUC := usecase.NewShoppingListUsecase(relationRepo)
	subscriptionUC := usecase.NewSubscriptionUsecase(subscriptionRepo, userRepo, recipeRepo)
	userUC := usecase.NewUserUsecase(userRepo, subscriptionRepo)

	sessionTTL := time.Duration(conf.Server.SessionTTL) * time.Hour
	auth := service.NewAuthService(rdb, userRepo, sessionTTL)

	e := echo.New()
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("foodgram-server"))
	}

	authMiddleware := middleware.NewAuthMiddleware(auth)
	e.Use(authMiddleware.IdentifyViewer)

	e.Static(conf.Media.URL, images.Root())

	handler := rest.NewHandler(catalogUC, recipeUC, relationUC, shoppingListUC, subscriptionUC, userUC, auth)
	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTraceProvider(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "foodgram-server"),
		)),
	)
	otel.SetTracerProvider(provider)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}, nil
}
