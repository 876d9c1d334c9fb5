package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fooddelivery/cmd"
	"fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/drone"
	"fooddelivery/internal/adapters/out/idempotency"
	"fooddelivery/internal/adapters/out/notifier"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/registry"
	"fooddelivery/internal/jobs"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	adapters, closers, err := buildAdapters(configs, logger)
	if err != nil {
		log.Fatalf("build adapters: %v", err)
	}
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if closeErr := closers[i].Close(); closeErr != nil {
				logger.Error("close adapter", "error", closeErr)
			}
		}
	}()

	app := cmd.NewCompositionRoot(configs, gormDB, adapters, logger)

	if err = seedSplitConfigs(ctx, app, configs.SplitConfigSeed, logger); err != nil {
		log.Fatalf("seed split configs: %v", err)
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("create jobs: %v", err)
	}

	if err = run(ctx, app, jobManager, configs, logger); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("service stopped")
}

func getConfigs() cmd.Config {
	if err := cmd.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}
	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return configs
}

func buildAdapters(configs cmd.Config, logger *slog.Logger) (cmd.Adapters, []io.Closer, error) {
	var closers []io.Closer

	registryClient, err := registry.NewClient(configs.RestaurantServiceURL, configs.AuthServiceURL, configs.RegistryTimeout)
	if err != nil {
		return cmd.Adapters{}, nil, err
	}
	droneClient, err := drone.NewClient(configs.DroneServiceURL, configs.DroneTimeout)
	if err != nil {
		return cmd.Adapters{}, nil, err
	}

	adapters := cmd.Adapters{
		Registry: registryClient,
		Drones:   droneClient,
	}

	switch configs.NotifyTransport {
	case cmd.NotifyTransportKafka:
		writer := notifier.NewKafkaWriter(configs.KafkaBrokers)
		closers = append(closers, writer)
		adapters.Notifier = notifier.NewKafkaNotifier(writer, configs.KafkaNotificationsTopic)
	case cmd.NotifyTransportRabbitMQ:
		conn, dialErr := amqp.Dial(configs.RabbitMQURL)
		if dialErr != nil {
			return cmd.Adapters{}, nil, fmt.Errorf("dial rabbitmq: %w", dialErr)
		}
		closers = append(closers, conn)
		channel, chErr := conn.Channel()
		if chErr != nil {
			return cmd.Adapters{}, closers, fmt.Errorf("open rabbitmq channel: %w", chErr)
		}
		if err = notifier.DeclareExchange(channel); err != nil {
			return cmd.Adapters{}, closers, err
		}
		adapters.Notifier = notifier.NewRabbitMQNotifier(channel)
	default:
		adapters.Notifier = notifier.NewLogNotifier(logger)
	}

	if configs.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     configs.RedisAddr,
			Password: configs.RedisPassword,
		})
		closers = append(closers, client)
		adapters.Idempotency = idempotency.NewRedisStore(client)
	} else {
		logger.Warn("REDIS_ADDR is empty, Idempotency-Key headers are ignored")
	}

	return adapters, closers, nil
}

func seedSplitConfigs(ctx context.Context, app cmd.CompositionRoot, path string, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	seed, err := cmd.ParseSplitConfigSeed(data)
	if err != nil {
		return err
	}
	activator := app.CreateActivateSplitConfigCommandHandler()
	return seed.Apply(ctx, app.SplitConfigUoWFactory(), &activator, logger)
}

func run(
	ctx context.Context,
	app cmd.CompositionRoot,
	jobManager *jobs.JobManager,
	configs cmd.Config,
	logger *slog.Logger,
) error {
	doc, err := http.LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	auth, err := http.NewAuthenticator(configs.JWTSecret)
	if err != nil {
		return err
	}
	e, err := http.NewRouter(http.NewServer(app.HTTPHandlers()), auth, doc, logger)
	if err != nil {
		return err
	}

	if err = jobManager.StartAll(); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
		if errors.Is(startErr, nethttp.ErrServerClosed) {
			return nil
		}
		return startErr
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		jobManager.StopAll()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
