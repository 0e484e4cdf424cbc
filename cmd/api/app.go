package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-wellness-hub/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/config"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/services"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/workers"
)

// backend is the opened storage stack for one run of the server.
type backend struct {
	store domain.DocumentStore
	// pinger is nil when there is no database to check.
	pinger adapterHTTP.Pinger
	redis  *redis.Client
	close  func()
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{close: func() {}}

	if cfg.RedisEnabled() {
		rdb, err := cache.Connect(ctx, cache.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			if cfg.StoreBackend == config.BackendRedis {
				return nil, err
			}
			log.Printf("[CACHE] Redis unavailable, continuing without cache and rate limiting: %v", err)
		} else {
			b.redis = rdb
			b.close = func() { rdb.Close() }
		}
	}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		b.store = repository.NewInMemoryStore()

	case config.BackendSQLite:
		db, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			b.close()
			return nil, err
		}
		sqlStore := repository.NewSQLStore(db)
		b.store, b.pinger = sqlStore, sqlStore
		b.close = chain(b.close, func() { db.Close() })

	case config.BackendPostgres:
		db, err := repository.OpenPostgres(cfg.PostgresDSN())
		if err != nil {
			b.close()
			return nil, err
		}
		sqlStore := repository.NewSQLStore(db)
		b.store, b.pinger = sqlStore, sqlStore
		b.close = chain(b.close, func() { db.Close() })

	case config.BackendRedis:
		b.store = repository.NewRedisStore(b.redis, "wellness")

	default:
		b.close()
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	// The redis backend is already the cache.
	if b.redis != nil && cfg.StoreBackend != config.BackendRedis && cfg.StoreBackend != config.BackendMemory {
		b.store = repository.NewCachedStore(b.store, b.redis, cfg.CacheTTL)
	}

	return b, nil
}

func chain(first, second func()) func() {
	return func() {
		second()
		first()
	}
}

type app struct {
	router *gin.Engine
	worker *workers.StreakWorker
}

// buildApp wires collections, services and handlers over the backend. The
// streak worker is returned unstarted.
func buildApp(ctx context.Context, cfg *config.Config, b *backend, clock adapterHTTP.Clock) (*app, error) {
	store := b.store

	users := repository.NewUserDirectory(store)
	goals := repository.NewCollection[domain.FitnessGoals](store, domain.KeyFitnessGoals)
	fitnessLog := repository.NewCollection[domain.FitnessLog](store, domain.KeyFitnessLog)
	checklist := repository.NewCollection[domain.Checklist](store, domain.KeyFitnessChecklist)
	fitnessStreak := repository.NewCollection[domain.Streak](store, domain.KeyFitnessStreak)
	checkins := repository.NewCollection[domain.Streak](store, domain.KeyCheckinStreak)
	meals := repository.NewCollection[[]domain.Meal](store, domain.KeyNutritionMeals)
	moods := repository.NewCollection[[]domain.MoodEntry](store, domain.KeyWellnessLogs)
	bookings := repository.NewCollection[[]domain.Booking](store, domain.KeyConsultations)
	programs := repository.NewCollection[[]domain.Program](store, domain.KeyPrograms)
	preferences := repository.NewCollection[domain.ProgramPreferences](store, domain.KeyProgramPreferences)

	authService := services.NewAuthService(users)
	sessionService := services.NewSessionService(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL, users)
	fitnessService := services.NewFitnessService(goals, fitnessLog, checklist, fitnessStreak)
	nutritionService := services.NewNutritionService(meals)
	wellnessService := services.NewWellnessService(moods)
	consultationService := services.NewConsultationService(bookings, users, programs)
	programService := services.NewProgramService(programs, preferences)
	dashboardService := services.NewDashboardService(services.DashboardDeps{
		Users:     users,
		Wellness:  moods,
		Goals:     goals,
		Fitness:   fitnessLog,
		Checklist: checklist,
		Checkins:  checkins,
		Programs:  programs,
		Bookings:  bookings,
	})

	if err := seedAdmin(ctx, authService, cfg); err != nil {
		return nil, err
	}

	worker := workers.NewStreakWorker(fitnessService, 100)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:         adapterHTTP.NewAuthHandler(authService, sessionService),
		FitnessHandler:      adapterHTTP.NewFitnessHandler(fitnessService, worker, clock),
		NutritionHandler:    adapterHTTP.NewNutritionHandler(nutritionService),
		WellnessHandler:     adapterHTTP.NewWellnessHandler(wellnessService, clock),
		ConsultationHandler: adapterHTTP.NewConsultationHandler(consultationService, clock),
		ProgramHandler:      adapterHTTP.NewProgramHandler(programService),
		DashboardHandler:    adapterHTTP.NewDashboardHandler(dashboardService, clock),
		Sessions:            sessionService,
		Store:               b.pinger,
		Redis:               b.redis,
		RateLimit:           cfg.RateLimit,
		RateWindow:          cfg.RateWindow,
		StartTime:           time.Now(),
	})

	return &app{router: router, worker: worker}, nil
}

// seedAdmin creates the configured admin account unless it already exists.
func seedAdmin(ctx context.Context, auth *services.AuthService, cfg *config.Config) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	_, err := auth.Register(ctx, services.RegisterInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     domain.RoleAdmin,
	})
	switch {
	case err == nil:
		log.Printf("[SEED] Admin account %s created", cfg.AdminEmail)
		return nil
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return nil
	default:
		return fmt.Errorf("seed admin: %w", err)
	}
}
