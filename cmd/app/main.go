package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"yumexpress/cmd"
	"yumexpress/internal/adapters/out/notify"
	postgresout "yumexpress/internal/adapters/out/postgres"
	"yumexpress/internal/adapters/out/postgres/driverrepo"
	"yumexpress/internal/adapters/out/postgres/orderrepo"
	"yumexpress/internal/adapters/out/rabbitmq"
	"yumexpress/internal/core/domain/services"
	"yumexpress/internal/core/ports"
	"yumexpress/internal/jobs"
	"yumexpress/internal/metrics"
	"yumexpress/internal/notifications"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/driver/postgres"
	gormlib "gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	gormDB := mustConnectDB(configs, logger)
	mustMigrate(gormDB, logger)

	senders, closeSenders := buildSenders(configs, logger)
	defer closeSenders()

	dispatcher := notifications.NewDispatcher(
		services.NewNotificationRouter(),
		senders,
		driverRepository(gormDB),
		configs.NotifyTimeout,
		logger,
	)
	defer dispatcher.Wait()

	root := cmd.NewCompositionRoot(configs, gormDB, dispatcher)

	metrics.Register()

	jobManager := jobs.NewJobManager(
		root.CreateCancelStaleOrdersCommandHandler(),
		configs.StaleOrderMaxAge,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start scheduled jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	return cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		AmqpURL:              os.Getenv("AMQP_URL"),
		NotificationExchange: os.Getenv("NOTIFICATION_EXCHANGE"),

		BasePrepMinutes:  envInt("BASE_PREP_MINUTES", 0),
		StaleOrderMaxAge: envDuration("STALE_ORDER_MAX_AGE", 15*time.Minute),
		NotifyTimeout:    envDuration("NOTIFY_TIMEOUT", 0),
	}
}

// envInt reads an integer variable. Zero means "use the component default".
func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func mustConnectDB(configs cmd.Config, logger *slog.Logger) *gormlib.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gormlib.Open(postgres.Open(dsn), &gormlib.Config{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	return db
}

func mustMigrate(db *gormlib.DB, logger *slog.Logger) {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusHistoryDTO{},
		&driverrepo.DriverDTO{},
	)
	if err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
}

// buildSenders assembles every notification channel. The push channel over
// RabbitMQ is optional: without an AMQP URL the service runs with the email
// and SMS channels only.
func buildSenders(configs cmd.Config, logger *slog.Logger) ([]ports.NotificationSender, func()) {
	senders := []ports.NotificationSender{
		notify.NewEmailSender(logger),
		notify.NewSMSSender(logger),
	}
	closeSenders := func() {}

	if configs.AmqpURL == "" {
		logger.Info("AMQP_URL not set, push notifications disabled")
		return senders, closeSenders
	}

	conn, err := amqp.Dial(configs.AmqpURL)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}

	pushSender, err := rabbitmq.NewPushSender(conn, configs.NotificationExchange)
	if err != nil {
		logger.Error("failed to set up push notification exchange", "error", err)
		os.Exit(1)
	}

	senders = append(senders, pushSender)
	closeSenders = func() {
		if err := pushSender.Close(); err != nil {
			logger.Error("failed to close push sender", "error", err)
		}
		if err := conn.Close(); err != nil {
			logger.Error("failed to close RabbitMQ connection", "error", err)
		}
	}
	return senders, closeSenders
}

// driverRepository builds a standalone repository for broadcast expansion.
// Reads run outside any unit of work.
func driverRepository(db *gormlib.DB) ports.DriverRepository {
	return postgresout.NewGormUnitOfWorkFactory(db).Create().DriverRepository()
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := root.CreateHTTPServer()
	server.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
