package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardanlabs/conf/v3"
	"github.com/irsalhamdi/globe-lingual/api"
	"github.com/irsalhamdi/globe-lingual/config"
	"github.com/irsalhamdi/globe-lingual/core/payment"
	"github.com/irsalhamdi/globe-lingual/database"
	"github.com/irsalhamdi/globe-lingual/rate"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var build = "develop"

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Infof("starting server")
	defer logger.Info("shutdown complete")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg := config.Config{
		Version: conf.Version{
			Build: build,
			Desc:  "Globe Lingual marketplace API",
		},
	}
	help, err := conf.Parse("", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	logger.Infof("startup config:\n%s", out)

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	db, err := database.Open(context.Background(), cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open db connection: %w", err)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			logger.Errorf("disconnecting from mongo: %v", err)
		}
	}()
	logger.Infof("connected to mongo database %s", cfg.DB.Name)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	strp := payment.NewStripe(cfg.Stripe.APISecret, "", payment.StripeLogger(logger))

	lim := rate.NewLimiter(cfg.Rate.Burst, cfg.Rate.Expiry, rate.Every(cfg.Rate.Interval))
	defer lim.Stop()

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:   cfg.Cors.Origin,
		Log:          logger,
		DB:           db,
		Transactions: cfg.DB.Transactions,
		Stripe:       strp,
		Currency:     cfg.Stripe.Currency,
		Secret:       cfg.Auth.Secret,
		TokenTTL:     cfg.Auth.TokenTTL,
		Limiter:      lim,

		ReadinessTimeout: cfg.DB.PingTimeout,
	})

	api := http.Server{
		Handler:      mux,
		Addr:         net.JoinHostPort("", cfg.Web.Port),
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("running port: %s", cfg.Web.Port)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}
