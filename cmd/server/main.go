package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/controledu/controledu-api/api/swagger"
	"github.com/controledu/controledu-api/internal/handler"
	"github.com/controledu/controledu-api/internal/middleware"
	"github.com/controledu/controledu-api/internal/repository"
	"github.com/controledu/controledu-api/internal/service"
	"github.com/controledu/controledu-api/pkg/cache"
	"github.com/controledu/controledu-api/pkg/config"
	"github.com/controledu/controledu-api/pkg/database"
	"github.com/controledu/controledu-api/pkg/logger"
	corsmiddleware "github.com/controledu/controledu-api/pkg/middleware/cors"
	reqidmiddleware "github.com/controledu/controledu-api/pkg/middleware/requestid"
	"github.com/controledu/controledu-api/pkg/storage"
)

// @title ControlEdu API
// @version 1.0.0
// @description Role-based school behavior tracking API
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	evidenceStore, err := storage.NewLocalStorage(cfg.Evidence.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare evidence storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Evidence.SignedURLSecret, cfg.Evidence.SignedURLTTL)

	directorRepo := repository.NewDirectorRepository(db)
	docenteRepo := repository.NewDocenteRepository(db)
	estudianteRepo := repository.NewEstudianteRepository(db)
	gravedadRepo := repository.NewTipoGravedadRepository(db)
	conductaRepo := repository.NewConductaRepository(db)
	registroRepo := repository.NewRegistroConductaRepository(db)
	observacionRepo := repository.NewObservacionRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	sessionRepo := repository.NewSessionRepository(redisClient, cfg.Session.TTL)

	validate := validator.New()
	metricsService := service.NewMetricsService()
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Reports.DashboardCacheTTL, logr, true)
	sessionService := service.NewSessionService(sessionRepo, logr)

	authService := service.NewAuthService(directorRepo, docenteRepo, estudianteRepo, sessionService, validate, logr)
	gravedadService := service.NewTipoGravedadService(gravedadRepo, logr)
	conductaService := service.NewConductaService(conductaRepo, gravedadRepo, cacheService, validate, logr)
	docenteService := service.NewDocenteService(docenteRepo, registroRepo, validate, logr)
	estudianteService := service.NewEstudianteService(estudianteRepo, registroRepo, validate, logr)
	observacionService := service.NewObservacionService(observacionRepo, estudianteRepo, validate, logr)
	registroService := service.NewRegistroConductaService(
		registroRepo, estudianteRepo, docenteRepo, conductaRepo,
		evidenceStore, signer,
		service.EvidenceConfig{MaxFileSizeBytes: cfg.Evidence.MaxFileSizeBytes, AllowedMIMEs: cfg.Evidence.AllowedMIMEs},
		cacheService, validate, logr,
	)
	dashboardService := service.NewDashboardService(
		registroRepo, observacionRepo, estudianteRepo, docenteRepo, conductaRepo,
		observacionService, cacheService, cfg.Reports.DashboardCacheTTL, logr,
	)
	reporteService := service.NewReporteService(
		registroRepo, observacionRepo, conductaRepo, estudianteRepo,
		cacheService, cfg.Reports.DashboardCacheTTL, logr,
	)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := gravedadService.InitializeDefaultGravedades(seedCtx); err != nil {
		cancelSeed()
		logr.Sugar().Fatalw("failed to seed severity catalog", "error", err)
	}
	cancelSeed()

	handlers := handler.Handlers{
		Auth:          handler.NewAuthHandler(authService, cfg.Session),
		Director:      handler.NewDirectorHandler(dashboardService, registroService, observacionService, estudianteService, docenteService, conductaService, reporteService),
		Gestion:       handler.NewGestionHandler(docenteService, estudianteService, conductaService, gravedadService),
		Docente:       handler.NewDocenteHandler(dashboardService, registroService, observacionService, estudianteService, conductaService),
		Estudiante:    handler.NewEstudianteHandler(dashboardService, observacionService),
		Conductas:     handler.NewConductaHandler(conductaService),
		Observaciones: handler.NewObservacionHandler(observacionService),
		Registros:     handler.NewRegistroConductaHandler(registroService),
		Metrics:       handler.NewMetricsHandler(metricsService),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	handler.RegisterRoutes(r, handlers, sessionService, metricsService, cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
