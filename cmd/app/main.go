package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"orderboard/cmd"
	adapter_http "orderboard/internal/adapters/in/http"
	"orderboard/internal/adapters/in/ws"
	"orderboard/internal/adapters/out/postgres/cartrepo"
	"orderboard/internal/adapters/out/postgres/menurepo"
	"orderboard/internal/adapters/out/postgres/orderrepo"
	"orderboard/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.Broadcaster().Run(ctx)

	jobManager := jobs.NewJobManager(app.Broadcaster(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, logger, configs.HTTPPort)
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

// mustOpenDatabase connects to PostgreSQL and migrates the schema.
// TranslateError is required: the repositories rely on gorm.ErrDuplicatedKey
// to detect identifier races between concurrent checkouts.
func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&menurepo.MenuItemDTO{},
		&cartrepo.CartLineDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, logger *slog.Logger, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	restServer := adapter_http.NewServer(
		app.CreateCheckoutCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateGetAnalyticsQueryHandler(),
		app.CreateGetKitchenQueueQueryHandler(),
		app.CreateGetUserOrdersQueryHandler(),
		app.CreateOrderReadRepository(),
	)
	restServer.RegisterRoutes(e)

	wsServer := ws.NewServer(app.Registry(), app.Broadcaster(), app.CreateGetUserOrdersQueryHandler(), logger)
	wsServer.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
