// @title        Gestion Stock Product API
// @version      2.0
// @description  Product, user and book management with JWT authentication and a gestionnaire role gate.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	_ "go.uber.org/automaxprocs"

	"github.com/gestionstock/product-api/internal/api"
	"github.com/gestionstock/product-api/internal/core/authz"
	"github.com/gestionstock/product-api/internal/core/ports"
	"github.com/gestionstock/product-api/internal/core/service"
	"github.com/gestionstock/product-api/internal/core/validation"
	"github.com/gestionstock/product-api/internal/infrastructure/messaging"
	"github.com/gestionstock/product-api/internal/infrastructure/queue"
	"github.com/gestionstock/product-api/internal/pkg/config"
	"github.com/gestionstock/product-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Env: cfg.Env})

	st, err := openStores(ctx, cfg, logger.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("open store")
	}

	// --- Product events ---
	var sink ports.ProductEventPublisher = messaging.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := messaging.NewKafkaPublisher(messaging.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), logger.Component("kafka"))
		st.closers = append(st.closers, func(context.Context) error { return kp.Close() })
		sink = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("product events go to kafka")
	}
	dispatcher := queue.NewDispatcher(cfg.Kafka.Workers, 0, sink, logger.Component("events"))
	dispatcher.Start(context.WithoutCancel(ctx))

	// --- Services ---
	engine := validation.NewEngine()
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	e := api.NewRouter(api.Options{
		Products: service.NewProductService(st.products, engine, dispatcher, logger.Component("products")),
		Auth:     service.NewAuthService(st.users, service.NewPasswordHasher(cfg.Auth.BcryptCost), tokens, logger.Component("auth")),
		Books:    service.NewBookService(st.books, engine),
		Tokens:   tokens,
		Policy:   authz.DefaultPolicy(),
		Checks:   st.checks,
		Log:      logger.Component("http"),
		Metrics:  cfg.Metrics.Enabled,
	})
	e.Server.ReadHeaderTimeout = 5 * time.Second
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 15 * time.Second

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Bool("tls", cfg.TLS.Enabled()).Str("store", cfg.Store.Driver).Msg("product api starting")

		var err error
		if cfg.TLS.Enabled() {
			err = e.StartTLS(addr, cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = e.Start(addr)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	shutdown(e.Shutdown, dispatcher, st, log)
}

func shutdown(stopHTTP func(context.Context) error, dispatcher *queue.Dispatcher, st *stores, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Msg("shutting down")
	if err := stopHTTP(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	dispatcher.Close()
	st.close(ctx, log)
	log.Info().Msg("product api stopped")
}
