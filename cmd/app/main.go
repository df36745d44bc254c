package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/capacityrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/sectorrepo"
	"dispatch/internal/adapters/out/rabbit"
	"dispatch/internal/core/application/usecases/commands"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	publisher, notifier := connectBroker(configs, logger)
	if notifier != nil {
		defer notifier.Close()
	}

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:    goDotEnvVariable("AMQP_URL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&sectorrepo.SectorDTO{},
		&capacityrepo.CapacityDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

// connectBroker dials RabbitMQ for change notifications. The broker is
// an accelerator, not a dependency: when it is unreachable the service
// starts anyway and clients fall back to polling.
func connectBroker(configs cmd.Config, logger *slog.Logger) (commands.ChangePublisher, *rabbit.Notifier) {
	notifier, err := rabbit.Dial(configs.AmqpURL, logger)
	if err != nil {
		logger.Warn("Message broker unreachable, change push disabled", "error", err)
		return rabbit.NopPublisher{}, nil
	}
	return notifier, notifier
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()

	srv := httpadapter.NewServer(httpadapter.Handlers{
		UpdateOrderStatus: app.CreateUpdateOrderStatusCommandHandler(),
		ClaimSlot:         app.CreateClaimSlotCommandHandler(),
		ReleaseSlot:       app.CreateReleaseSlotCommandHandler(),
		ClaimRoute:        app.CreateClaimRouteCommandHandler(),
		CompleteRoute:     app.CreateCompleteRouteCommandHandler(),
		CompleteOrder:     app.CreateCompleteOrderCommandHandler(),
		AttachReview:      app.CreateAttachReviewCommandHandler(),
		SetCapacity:       app.CreateSetCapacityCommandHandler(),
		GetOrders:         app.CreateGetOrdersQueryHandler(),
		GetOrder:          app.CreateGetOrderQueryHandler(),
		GetReadyBatches:   app.CreateGetReadyBatchesQueryHandler(),
		GetRoute:          app.CreateGetRouteQueryHandler(),
		GetActiveDrivers:  app.CreateGetActiveDriversQueryHandler(),
		GetDriverHistory:  app.CreateGetDriverHistoryQueryHandler(),
		GetSectors:        app.CreateGetSectorsQueryHandler(),
		GetCapacity:       app.CreateGetCapacityQueryHandler(),
	})
	srv.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
