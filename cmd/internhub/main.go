package main

import (
	"github.com/internhub-dev/internhub/db"
	"github.com/internhub-dev/internhub/internal/auth"
	"github.com/internhub-dev/internhub/internal/config"
	"github.com/internhub-dev/internhub/internal/middleware"
	"github.com/internhub-dev/internhub/internal/router"
	"github.com/internhub-dev/internhub/internal/scheduler"
	"github.com/internhub-dev/internhub/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	if err := auth.InitJWTSecret(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize JWT secret")
	}

	if err := db.ConnectDatabase(cfg.Database.DSN()); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.MigrateDatabase(); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := db.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logrus.WithError(err).Fatal("Failed to seed admin user")
		}
	}

	if cfg.MinIO.Endpoint != "" {
		store, err := storage.New(cfg.MinIO)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize object storage")
		}
		storage.Default = store
	} else {
		logrus.Warn("MINIO_ENDPOINT not set, uploads are disabled")
	}

	var limiter *middleware.RedisLimiter

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		limiter = middleware.NewRedisLimiter(client)
	} else {
		logrus.Warn("REDIS_ADDR not set, rate limiting is disabled")
	}

	reminders := scheduler.NewScheduler(cfg.ReminderInterval, cfg.ReminderAge)
	reminders.Start()
	defer reminders.Stop()

	r := router.NewRouter(limiter)

	logrus.Infof("Starting InternHub on port %s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
