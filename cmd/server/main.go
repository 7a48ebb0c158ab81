package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	h "github.com/alex-shestmincev/mongo-university-final/internal/http"
	"github.com/alex-shestmincev/mongo-university-final/internal/repository"
	"github.com/alex-shestmincev/mongo-university-final/internal/seed"
	"github.com/alex-shestmincev/mongo-university-final/internal/service"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Level = logrus.InfoLevel
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
}

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "mongomart"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// initTracerProvider wires the OTLP exporter when an endpoint is configured;
// without one, tracing stays off.
func initTracerProvider(ctx context.Context) (*sdktrace.TracerProvider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("mongomart"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}

func main() {
	seedCatalog := flag.Bool("seed", false, "seed the sample catalog on startup")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("could not load .env file")
	}

	cfg := loadConfig()
	ctx := context.Background()

	tp, err := initTracerProvider(ctx)
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}
	if tp != nil {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.WithError(err).Error("error shutting down tracer provider")
			}
		}()
	}

	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.WithField("uri", cfg.MongoURI).Info("connected to MongoDB")

	cartRepo := repository.NewMongoCartRepository(mongoDB, log)
	catalogRepo := repository.NewMongoCatalogRepository(mongoDB)

	if err := cartRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create cart indexes: %v", err)
	}
	if err := catalogRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create item indexes: %v", err)
	}

	if *seedCatalog {
		if err := seed.Catalog(ctx, mongoDB); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
		log.Info("sample catalog seeded")
	}

	cartService := service.NewCartService(cartRepo, catalogRepo, log)
	catalogService := service.NewCatalogService(catalogRepo, log)

	cartHandler := h.NewCartHandler(cartService, cfg.RequestTimeout)
	catalogHandler := h.NewCatalogHandler(catalogService, cfg.RequestTimeout)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(h.RequestLogger(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", catalogHandler.GetCategories)
		r.Get("/items", catalogHandler.GetItems)
		r.Get("/items/search", catalogHandler.SearchItems)
		r.Get("/items/{itemID}", catalogHandler.GetItem)
		r.Post("/items/{itemID}/reviews", catalogHandler.AddReview)

		r.Get("/users/{userID}/cart", cartHandler.GetCart)
		r.Post("/users/{userID}/cart/items/{itemID}", cartHandler.AddItem)
		r.Put("/users/{userID}/cart/items/{itemID}", cartHandler.UpdateQuantity)
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: otelhttp.NewHandler(r, "mongomart"),
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
	log.Info("server stopped")
}
