package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/adoreshop/gateway"
	"github.com/example/adoreshop/pkg/advice"
	"github.com/example/adoreshop/pkg/config"
	"github.com/example/adoreshop/pkg/discovery"
	"github.com/example/adoreshop/pkg/grpc"
	"github.com/example/adoreshop/pkg/logging"
	"github.com/example/adoreshop/pkg/repository"
	"github.com/example/adoreshop/pkg/studio"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	healthInterval  = 15 * time.Second
)

func main() {
	path := os.Getenv("ADORESHOP_CONFIG")
	if path == "" {
		path = "config/config.yaml"
	}

	// Load config
	cfg, err := config.Load(path)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting storefront",
		zap.String("name", cfg.Server.Name),
		zap.String("gateway", cfg.Gateway.Addr()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Session store
	redisRepo := repository.NewRedisRepository(&cfg.Redis, cfg.Session.TTL)
	defer redisRepo.Close()
	if err := redisRepo.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}

	// Event journal
	var sink studio.EventSink = studio.NopSink{}
	var mongoRepo *repository.MongoRepository
	if cfg.MongoDB.Enabled {
		mongoRepo, err = repository.NewMongoRepository(ctx, &cfg.MongoDB)
		if err != nil {
			logger.Warn("Failed to connect to MongoDB, continuing without event journal", zap.Error(err))
		} else {
			sink = mongoRepo
		}
	}

	// Storefront actors
	system := actor.NewActorSystem()
	registry := studio.NewRegistry(system, studio.Deps{
		Advisor: advice.NewService(advice.StaticProvider{}, &cfg.Advice, logger.Named("advice")),
		Sink:    sink,
		Logger:  logger.Named("studio"),
	}, cfg.Storefront.RequestTimeout)

	// Gateway
	servers, serversCtx := errgroup.WithContext(ctx)
	gw := gateway.NewGateway(cfg, logger.Named("gateway"), redisRepo, registry)
	if mongoRepo != nil {
		gw.UseJournal(mongoRepo)
	}
	servers.Go(gw.Start)

	// Health
	var healthServer *grpc.HealthServer
	if cfg.GRPC.Enabled {
		healthServer = grpc.NewHealthServer(logger.Named("health"))
		healthServer.AddProbe("redis", redisRepo.Ping)
		if mongoRepo != nil {
			healthServer.AddProbe("mongodb", mongoRepo.Ping)
		}
		go healthServer.Run(ctx, healthInterval)
		servers.Go(func() error {
			if err := healthServer.Start(cfg.GRPC.Addr()); err != nil {
				return fmt.Errorf("health server: %w", err)
			}
			return nil
		})
	}

	// Service discovery
	var sd *discovery.ServiceDiscovery
	instance := &discovery.ServiceInstance{
		Name: cfg.Server.Name,
		Host: cfg.Gateway.Host,
		Port: cfg.Gateway.Port,
	}
	if cfg.Etcd.Enabled {
		sd, err = discovery.NewServiceDiscovery(&cfg.Etcd, logger.Named("discovery"))
		if err != nil {
			logger.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
		} else if err := sd.Register(ctx, instance); err != nil {
			logger.Warn("Failed to register storefront", zap.Error(err))
		} else if peers, err := sd.Discover(ctx, cfg.Server.Name); err == nil {
			logger.Info("Storefront instances", zap.Int("count", len(peers)))
		}
	}

	logger.Info("Storefront started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case <-serversCtx.Done():
		logger.Error("Server error", zap.Error(context.Cause(serversCtx)))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if sd != nil {
		if err := sd.Deregister(shutdownCtx, instance); err != nil {
			logger.Warn("Failed to deregister storefront", zap.Error(err))
		}
		sd.Close()
	}
	if err := gw.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Gateway shutdown", zap.Error(err))
	}
	if healthServer != nil {
		healthServer.Stop()
	}
	if err := servers.Wait(); err != nil {
		logger.Warn("Servers exited with error", zap.Error(err))
	}
	registry.Close()
	system.Shutdown()
	cancel()
	if mongoRepo != nil {
		_ = mongoRepo.Close(shutdownCtx)
	}

	logger.Info("Storefront stopped")
}
