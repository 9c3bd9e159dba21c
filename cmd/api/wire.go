package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"credit-app/config"
	"credit-app/internal/adapter/export"
	httpHandler "credit-app/internal/adapter/http/handler"
	"credit-app/internal/adapter/storage/memory"
	pgStorage "credit-app/internal/adapter/storage/postgres"
	redisStorage "credit-app/internal/adapter/storage/redis"
	"credit-app/internal/core/ports"
	"credit-app/internal/service"
)

// storage bundles the repositories and connections one process runs against.
type storage struct {
	users    ports.UserRepository
	requests ports.CreditRequestRepository
	audit    ports.AuditRepository
	redis    goredis.UniversalClient
	checkers []ports.HealthChecker
	closers  []func()
}

func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStorage connects to PostgreSQL and Redis, or, in memory mode, to an
// in-process store and an embedded redis server.
func openStorage(ctx context.Context, cfg *config.Config, inMemory bool, log zerolog.Logger) (*storage, error) {
	st := &storage{}

	if inMemory {
		store := memory.NewStore()
		st.users, st.requests, st.audit = store.Users(), store.CreditRequests(), store.AuditLogs()
		st.checkers = append(st.checkers, store)
	} else {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, pool.Close)
		st.users = pgStorage.NewUserRepo(pool)
		st.requests = pgStorage.NewCreditRequestRepo(pool)
		st.audit = pgStorage.NewAuditRepo(pool)
		st.checkers = append(st.checkers, pgStorage.NewHealthCheck(pool))
		log.Info().Msg("PostgreSQL connected")
	}

	if !cfg.RateLimit.Enabled {
		return st, nil
	}

	redisCfg := cfg.Redis
	if inMemory {
		mr, err := miniredis.Run()
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("start embedded redis: %w", err)
		}
		st.closers = append(st.closers, mr.Close)
		port, err := strconv.Atoi(mr.Port())
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("embedded redis port: %w", err)
		}
		redisCfg = config.RedisConfig{Host: mr.Host(), Port: port}
	}

	rdb, err := redisStorage.NewClient(ctx, redisCfg, log)
	if err != nil {
		st.Close()
		return nil, err
	}
	st.closers = append(st.closers, func() { _ = rdb.Close() })
	st.redis = rdb
	st.checkers = append(st.checkers, redisStorage.NewHealthCheck(rdb))
	log.Info().Str("addr", redisCfg.Addr()).Msg("Redis connected")

	return st, nil
}

func newSeeder(st *storage, log zerolog.Logger) *service.Seeder {
	return service.NewSeeder(st.users, st.requests, service.NewArgon2HashService(), log)
}

// newRouter wires services onto the bus and the bus onto the HTTP routes.
func newRouter(cfg *config.Config, st *storage, log zerolog.Logger) (*gin.Engine, error) {
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}

	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(st.audit, log)

	bus := service.NewBus(auditSvc, log, cfg.Audit.Strict)
	err := service.RegisterHandlers(bus, service.Handlers{
		CreditRequests: service.NewCreditRequestService(st.requests, log),
		Exports: service.NewExportService(st.requests, cfg.Export.DefaultFormat, cfg.Export.SheetName,
			export.NewXLSXEncoder(cfg.Export.SheetName), export.NewCSVEncoder()),
		Audit: auditSvc,
		Auth:  service.NewAuthService(st.users, hashSvc, tokenSvc, log),
	})
	if err != nil {
		return nil, fmt.Errorf("register handlers: %w", err)
	}

	deps := httpHandler.RouterDeps{
		Bus:            bus,
		TokenSvc:       tokenSvc,
		HealthCheckers: st.checkers,
		Logger:         log,
	}
	if st.redis != nil {
		deps.RateLimiter = redisStorage.NewRateLimitStore(st.redis)
	}
	return httpHandler.SetupRouter(deps), nil
}
