package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/metrics"
	"github.com/rhyrak/go-timetable/internal/store"
	"github.com/rhyrak/go-timetable/pkg/config"
	"github.com/rhyrak/go-timetable/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("TIMETABLE_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sc, err := cfg.SchedulerConfiguration()
	if err != nil {
		log.Fatal("invalid scheduler configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.New(ctx, cfg.Store, cfg.Server.DataDir)
	cancel()
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(&server{
		store:     st,
		metrics:   metrics.New(),
		logger:    log,
		scheduler: sc,
		delimiter: cfg.Input.Delimiter,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("listening", zap.String("addr", addr), zap.String("store", cfg.Store.Driver))
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newRouter(s *server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	r.Use(logger.GinMiddleware(s.logger))
	r.Use(s.observe)

	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	r.GET("/timetable", s.handleGetTimetables)
	r.GET("/timetable/:id", s.handleGetTimetableWithId)
	r.DELETE("/timetable/:id", s.handleDeleteTimetableWithId)
	r.POST("/", s.handlePostTimetable)

	return r
}
