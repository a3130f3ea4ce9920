package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"skb_backend/internals/cache"
	"skb_backend/internals/configs"
	database "skb_backend/internals/databases"
	helper "skb_backend/internals/helpers"
	"skb_backend/internals/helpers/media"
	"skb_backend/internals/metrics"
	middlewares "skb_backend/internals/middlewares"
	routes "skb_backend/internals/route"
	routeDetails "skb_backend/internals/route/details"
)

func main() {
	configs.LoadEnv()
	cfg, err := configs.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	configs.SetupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// migrations run before the pool so statement_timeout never cuts them off
	if cfg.Database.AutoMigrate {
		if err := database.MigrateUp(database.DSN(cfg.Database, false)); err != nil {
			logrus.WithError(err).Fatal("migrate")
		}
	}

	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("database")
	}
	database.TunePool(db, cfg.Database)
	database.WarmUpQueries(db)
	defer database.Close(db)

	var pageCache cache.Cache = cache.Noop{}
	redisClient, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	switch {
	case err != nil:
		logrus.WithError(err).Warn("redis unavailable, caching disabled")
	case redisClient != nil:
		defer redisClient.Close()
		pageCache = cache.NewRedisCache(redisClient, cfg.Redis.TTL)
		logrus.WithField("addr", cfg.Redis.Addr).Info("redis connected")
	}

	store, err := media.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.PublicURL)
	if err != nil {
		logrus.WithError(err).Fatal("upload storage")
	}

	m := metrics.New()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               60 << 20,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             cfg.Server.ReadTimeout,
		WriteTimeout:            cfg.Server.WriteTimeout,
		IdleTimeout:             cfg.Server.IdleTimeout,
	})

	middlewares.SetupMiddlewares(app, middlewares.Options{
		AllowOrigins:   cfg.Server.AllowOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		Observer:       m,
	})

	routes.SetupRoutes(ctx, app, routeDetails.Deps{
		DB:      db,
		Config:  cfg,
		Cache:   pageCache,
		Store:   store,
		Metrics: m,
	})

	go func() {
		addr := "0.0.0.0:" + cfg.Server.Port
		logrus.WithField("addr", addr).Info("listening")
		if err := app.Listen(addr); err != nil {
			logrus.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("shutdown")
	}
}
