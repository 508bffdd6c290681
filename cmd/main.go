package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/adapter/email"
	grpcAdapter "github.com/Abdurahmanit/GroupProject/rental-service/internal/adapter/grpc"
	natsAdapter "github.com/Abdurahmanit/GroupProject/rental-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/adapter/repository/cache"
	mongoRepo "github.com/Abdurahmanit/GroupProject/rental-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/adapter/rest"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/usecase"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Application starting...", zap.String("service_name", cfg.ServiceName))

	policy, err := usecase.ParseCompensationPolicy(cfg.BookingCompensationPolicy)
	if err != nil {
		appLogger.Fatal("Invalid booking compensation policy", zap.Error(err))
	}

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
	defer func() {
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		appLogger.Info("Disconnecting from MongoDB...")
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	ctxPing, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := mongoClient.Ping(ctxPing, nil); err != nil {
		appLogger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	appLogger.Info("Successfully connected and pinged MongoDB.")
	db := mongoClient.Database(cfg.MongoDatabase)

	listingRepo, err := mongoRepo.NewListingRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ListingRepository", zap.Error(err))
	}
	bookingRepo, err := mongoRepo.NewBookingRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize BookingRepository", zap.Error(err))
	}
	reviewRepo, err := mongoRepo.NewReviewRepository(db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ReviewRepository", zap.Error(err))
	}
	walletRepo := mongoRepo.NewWalletRepository(db, appLogger)

	var listings domain.ListingsPort = listingRepo
	if cfg.RedisAddr != "" {
		ctxRedis, cancelRedis := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.NewRedisClient(ctxRedis, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancelRedis()
		if err != nil {
			appLogger.Warn("Redis unavailable, listing cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			defer redisClient.Close()
			listings = cache.NewListingCache(listingRepo, redisClient, cfg.ListingCacheTTL, metricsManager, appLogger)
			appLogger.Info("Listing cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
	if err != nil {
		appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
	}
	defer natsPublisher.Close()

	// Optional collaborators stay nil interfaces when not configured.
	var photoStorage usecase.PhotoStorage
	if cfg.MinioEnabled() {
		ctxMinio, cancelMinio := context.WithTimeout(context.Background(), 10*time.Second)
		storage, err := s3.NewS3Storage(ctxMinio, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL, appLogger)
		cancelMinio()
		if err != nil {
			appLogger.Fatal("Failed to initialize thumbnail storage", zap.Error(err))
		}
		photoStorage = storage
	}

	var notifier usecase.BookingNotifier
	if cfg.SMTPEnabled() {
		notifier = email.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPSenderEmail, appLogger)
	}

	availability := usecase.NewAvailabilityFilter(bookingRepo, appLogger)
	handler := rest.NewHandler(rest.Usecases{
		Listings:    usecase.NewListingUsecase(listings, availability, photoStorage, natsPublisher, cfg.FeaturedListingsLimit, appLogger),
		Bookings:    usecase.NewBookingUsecase(listings, bookingRepo, appLogger),
		Coordinator: usecase.NewBookingCoordinator(listings, bookingRepo, walletRepo, natsPublisher, notifier, metricsManager, policy, appLogger),
		Payments:    usecase.NewPaymentUsecase(walletRepo, natsPublisher, metricsManager, appLogger),
		Reviews:     usecase.NewReviewUsecase(listings, bookingRepo, reviewRepo, natsPublisher, metricsManager, appLogger),
		References:  usecase.NewReferenceResolver(listings),
	}, metricsManager, appLogger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           rest.NewRouter(handler, cfg.JWTSecret, metricsManager, appLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	healthServer := grpcAdapter.NewHealthServer(cfg.ServiceName, appLogger)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCHealthPort)
	if err != nil {
		appLogger.Fatal("Failed to listen for gRPC", zap.String("port", cfg.GRPCHealthPort), zap.Error(err))
	}
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("port", cfg.GRPCHealthPort))
		if err := healthServer.Server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			appLogger.Fatal("gRPC server Serve error", zap.Error(err))
		}
	}()
	healthServer.SetServing(true)

	metricsServer := metrics.NewMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry)
	if metricsServer != nil {
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	healthServer.SetServing(false)

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("Metrics server shutdown failed", zap.Error(err))
		}
	}
	healthServer.Shutdown()
	appLogger.Info("Application shutting down...")
}
