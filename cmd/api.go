package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cmms-platform/cmms-service/internal/blob"
	"github.com/cmms-platform/cmms-service/internal/config"
	"github.com/cmms-platform/cmms-service/internal/database"
	"github.com/cmms-platform/cmms-service/internal/handler"
	"github.com/cmms-platform/cmms-service/internal/kafka"
	"github.com/cmms-platform/cmms-service/internal/notify"
	"github.com/cmms-platform/cmms-service/internal/ratelimit"
	"github.com/cmms-platform/cmms-service/internal/router"
	"github.com/cmms-platform/cmms-service/internal/service"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAPI()
	},
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	setupLogging(cfg)

	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return err
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return err
	}

	var store blob.Store
	if cfg.BlobEnabled() {
		store, err = blob.NewMinioStore(blob.MinioConfig{
			Endpoint:      cfg.Blob.Endpoint,
			AccessKey:     cfg.Blob.AccessKey,
			SecretKey:     cfg.Blob.SecretKey,
			Bucket:        cfg.Blob.Bucket,
			UseSSL:        cfg.Blob.UseSSL,
			PublicBaseURL: cfg.Blob.PublicBaseURL,
		})
		if err != nil {
			return err
		}
	} else {
		// Локальный диск для разработки; в production задаётся BLOB_ENDPOINT.
		store = blob.NewDiskStore("./uploads", cfg.PublicBaseURL+"/uploads")
		logrus.Warn("blob: no endpoint configured, storing uploads on local disk")
	}
	gateway := blob.NewGateway(store, cfg.Blob.CDNBaseURL)

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicSubmission)
	defer producer.Close()
	notifier := notify.NewClient(cfg.NotifierURL)

	assets := service.NewAssetService(db)
	workOrders := service.NewWorkOrderService(db)
	parts := service.NewPartService(db)
	locations := service.NewLocationService(db)
	users := service.NewUserService(db)
	pmSchedules := service.NewPMScheduleService(db)
	portals := service.NewPortalService(db)
	submissions := service.NewSubmissionService(db, producer, notifier)

	jwtTTL := time.Duration(cfg.JWTTTLHours) * time.Hour

	h := router.Handlers{
		Auth:         handler.NewAuthHandler(users, cfg.JWTSecret, jwtTTL),
		Assets:       handler.NewAssetHandler(assets),
		WorkOrders:   handler.NewWorkOrderHandler(workOrders),
		Parts:        handler.NewPartHandler(parts),
		Locations:    handler.NewLocationHandler(locations),
		Users:        handler.NewUserHandler(users),
		PMSchedules:  handler.NewPMScheduleHandler(pmSchedules),
		Portals:      handler.NewPortalHandler(portals, cfg.PublicBaseURL),
		Submissions:  handler.NewSubmissionHandler(submissions),
		PublicPortal: handler.NewPublicPortalHandler(portals, submissions, gateway, ratelimit.NewPortalLimiter()),
		Uploads:      handler.NewUploadHandler(gateway),
		TableConfig:  handler.NewTableConfigHandler(),
		Imports:      handler.NewImportHandler(assets, parts),
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.New(h, cfg.JWTSecret)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("http server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logrus.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("server stopped")
	return nil
}

func setupLogging(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
