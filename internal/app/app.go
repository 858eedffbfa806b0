package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Noteboard/internal/auth"
	"Noteboard/internal/config"
	"Noteboard/internal/repo"
	"Noteboard/internal/repo/memory"
	mongostore "Noteboard/internal/repo/mongo"
	"Noteboard/internal/repo/postgres"
	"Noteboard/migrations"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type App struct {
	cfg    config.Config
	log    *logrus.Logger
	pg     *pgxpool.Pool
	mongo  *mongo.Client
	redis  *redis.Client
	router *gin.Engine
}

// New connects the configured backends and builds the router. On error
// every connection opened so far is closed.
func New(ctx context.Context, cfg config.Config, log *logrus.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	stores, err := a.openStores(ctx)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	var revoked auth.Revocations = auth.NewMemoryRevocations()
	if cfg.Redis.Enabled() {
		rdb, err := newRedis(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.redis = rdb
		revoked = auth.NewRedisRevocations(rdb)
	} else {
		log.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
	}

	a.router = NewRouter(cfg, Deps{
		Stores:      stores,
		Revocations: revoked,
		Log:         log,
		Ping:        a.ping,
	})
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.mongo != nil {
		errs = append(errs, a.mongo.Disconnect(ctx))
	}
	if a.pg != nil {
		a.pg.Close()
	}
	return errors.Join(errs...)
}

func (a *App) openStores(ctx context.Context) (repo.Stores, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverPostgres:
		if err := migrations.Run(ctx, a.cfg.PG.DSN, "up"); err != nil {
			return repo.Stores{}, err
		}
		pool, err := newPostgres(ctx, a.cfg.PG)
		if err != nil {
			return repo.Stores{}, err
		}
		a.pg = pool
		a.log.Info("storage: postgres")
		return postgres.NewStores(pool), nil

	case config.DriverMongo:
		client, err := newMongo(ctx, a.cfg.Mongo)
		if err != nil {
			return repo.Stores{}, err
		}
		a.mongo = client
		db := client.Database(a.cfg.Mongo.Database)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return repo.Stores{}, err
		}
		a.log.WithField("database", a.cfg.Mongo.Database).Info("storage: mongo")
		return mongostore.NewStores(db), nil
	}

	a.log.Warn("storage: memory, data is lost on restart")
	return memory.NewStores(), nil
}

// ping checks every external dependency the app holds.
func (a *App) ping(ctx context.Context) error {
	if a.pg != nil {
		if err := a.pg.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Ping(ctx, readpref.Primary()); err != nil {
			return fmt.Errorf("mongo: %w", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func newPostgres(ctx context.Context, cfg config.PGConfig) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	pcfg.MaxConns = cfg.MaxConns
	pcfg.MinConns = cfg.MinConns
	pcfg.MaxConnIdleTime = 5 * time.Minute
	pcfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return pool, nil
}

func newMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
