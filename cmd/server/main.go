package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/vetclinic/clinic-system/internal/api"
	"github.com/vetclinic/clinic-system/internal/core/service"
	"github.com/vetclinic/clinic-system/internal/infrastructure/config"
	mongodb "github.com/vetclinic/clinic-system/internal/infrastructure/db/mongo"
	redisdb "github.com/vetclinic/clinic-system/internal/infrastructure/db/redis"
	"github.com/vetclinic/clinic-system/internal/infrastructure/queue"
	"github.com/vetclinic/clinic-system/pkg/logger"
	"github.com/vetclinic/clinic-system/pkg/token"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	petRepo := mongodb.NewPetRepository(db)
	vetRepo := mongodb.NewVetRepository(db)
	ownerRepo := mongodb.NewOwnerRepository(db)
	serviceRepo := mongodb.NewServiceRepository(db)
	recordRepo := mongodb.NewMedicalRecordRepository(db)
	specialtyRepo := mongodb.NewSpecialtyRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := appointmentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("appointment index creation failed")
	}

	// --- Services ---
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, issuer, log)

	auditService := service.NewAuditService(auditRepo, redisdb.NewAuditDedup(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	appointmentService := service.NewAppointmentService(
		appointmentRepo, petRepo, vetRepo, serviceRepo, dispatcher, log)
	clinicService := service.NewClinicService(
		appointmentRepo, petRepo, vetRepo, serviceRepo, redisdb.NewStatsCache(rdb), log)

	if cfg.AdminPassword != "" {
		if err := authService.EnsureAdmin(ctx, cfg.AdminUser, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("admin bootstrap failed")
		}
	} else {
		log.Warn().Msg("ADMIN_PASSWORD not set, skipping admin bootstrap")
	}

	// --- HTTP ---
	e := api.NewRouter(api.RouterConfig{
		DB:           db,
		Redis:        rdb,
		Issuer:       issuer,
		Auth:         authService,
		Appointments: appointmentService,
		Clinic:       clinicService,
		Pets:         petRepo,
		Vets:         vetRepo,
		Owners:       ownerRepo,
		Services:     serviceRepo,
		Records:      recordRepo,
		Specialties:  specialtyRepo,
		Log:          log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
