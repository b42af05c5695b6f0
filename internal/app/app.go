package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cdbl-lms/internal/config"
	"cdbl-lms/internal/shared/connection"
	"cdbl-lms/internal/shared/database"
)

// Infra is the shared infrastructure of one process. Redis is optional:
// when it cannot be reached the api runs without caching or idempotency
// replay, and rate limits stay per replica.
type Infra struct {
	Config *config.Config
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
	Logger *zap.Logger
}

func Connect(cfg *config.Config, logger *zap.Logger, withRedis bool) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	infra := &Infra{Config: cfg, GormDB: gormDB, SQLDB: sqlDB, Logger: logger}
	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, continuing without it", zap.Error(err))
		} else {
			infra.Redis = rdb
		}
	}
	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

// BuildApp wires every module onto router under /api/v1.
func BuildApp(router *gin.Engine, infra *Infra) (*Modules, error) {
	modules, err := NewModules(infra)
	if err != nil {
		return nil, err
	}
	if err := registerRoutes(router, infra, modules); err != nil {
		return nil, err
	}
	return modules, nil
}
