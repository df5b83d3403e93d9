package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pmb-ti/accountrenewal/config"
	"github.com/pmb-ti/accountrenewal/controller"
	"github.com/pmb-ti/accountrenewal/db"
	"github.com/pmb-ti/accountrenewal/directory"
	logger "github.com/pmb-ti/accountrenewal/logging"
	"github.com/pmb-ti/accountrenewal/router"
	"github.com/pmb-ti/accountrenewal/util"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the renewal HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg := config.GetConfig()

	// Redis only backs the rate limiter
	var rateLimitClient *redis.Client
	if cfg.Redis.Enabled {
		if err := db.InitRedis(ctx); err != nil {
			return err
		}
		defer db.CloseRedis()
		rateLimitClient = db.RedisClient
	}

	eventBus := util.NewEventBus()
	eventBus.Start(ctx)
	util.NewNotificationService().Register(eventBus)

	services, cleanup, err := buildServices(ctx, eventBus)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := directory.VerifyConnectivity(ctx, services.Directory, config.Domains()); err != nil {
		logger.Warn("Starting with unreachable directory domains", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	controllers := controller.InitializeControllers(services)
	engine := router.SetupRouter(controllers, rateLimitClient, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("directory", cfg.Directory.Backend))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	eventBus.Wait()

	logger.Info("Server exiting")
	return nil
}
