package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventdesk/auth"
	"eventdesk/backend"
	"eventdesk/config"
	"eventdesk/events"
	"eventdesk/logger"
	"eventdesk/routes"
	"eventdesk/store"
	"eventdesk/utils"
)

func main() {
	config.Load()
	logger.InitLogger(logger.LevelFromConfig(config.GetLogLevel()))

	// Redis backs the persistence adapter and the event cache.
	rdb := redis.NewClient(&redis.Options{Addr: config.GetRedisAddr()})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Errorf("redis ping failed: %v", err)
		return
	}

	// Remote resource client for the events and users collections.
	client := backend.NewClient(config.GetBackendURL(), config.GetRequestTimeout())
	eventRepo := backend.NewCachedEvents(backend.NewEvents(client), rdb, config.GetCacheTTL())
	userRepo := backend.NewUsers(client)

	st := store.NewRedisStore(rdb)
	flash := utils.NewFlash(st)
	sessions := auth.NewManager(userRepo, st)
	eventSvc := events.NewService(eventRepo, st)

	if !config.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := gin.Default()
	server.LoadHTMLGlob("templates/*.html")

	routes.RegisterRoutes(server, sessions, eventSvc, flash, rdb)

	logger.Infof("listening on %s, backend %s", config.GetListenAddr(), config.GetBackendURL())
	if err := server.Run(config.GetListenAddr()); err != nil {
		logger.Errorf("server stopped: %v", err)
	}
}
