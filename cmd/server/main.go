package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"metrowatch-go/config"
	"metrowatch-go/internal/api/handlers"
	"metrowatch-go/internal/core/models"
	"metrowatch-go/internal/db"
	"metrowatch-go/internal/integrations/mqtt"
	"metrowatch-go/internal/logger"
	"metrowatch-go/internal/server/sse"
	"metrowatch-go/internal/services"
	"metrowatch-go/internal/services/autoresolve"
	"metrowatch-go/internal/services/watcher"
	"metrowatch-go/internal/util/timezone"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "/config/config.yaml", "Pfad zur Konfigurationsdatei")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Log); err != nil {
		log.Errorf("Failed to initialize logger completely: %v", err)
	}

	// Initialize timezone (used for toast timestamp labels)
	timezone.Initialize(cfg.Server.Timezone)

	// Initialize in-memory store: seeded from fixtures, gone on restart
	log.Info("Initializing in-memory store...")
	store, err := db.New()
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	// Domain services with simulated network latency
	latency := time.Duration(cfg.Store.LatencyMs) * time.Millisecond
	cameraService := services.NewCameraService(store, latency)
	incidentService := services.NewIncidentService(store, latency)
	settingsService := services.NewSettingsService(store, latency)

	// SSE hub: the notification surface for toast messages
	sseHub := sse.NewHub()
	go sseHub.Run()

	// Incident watcher: polls the incident list and notifies once per new incident
	var incidentWatcher *watcher.Watcher
	if cfg.Watcher.Enabled {
		incidentWatcher = watcher.New(
			watcher.SourceFunc(func(ctx context.Context) ([]models.Incident, error) {
				return incidentService.List(ctx, services.IncidentFilter{})
			}),
			sseHub,
			time.Duration(cfg.Watcher.IntervalSeconds)*time.Second,
		)
		incidentWatcher.Start()
		defer incidentWatcher.Stop()
	} else {
		log.Info("Incident watcher is disabled in config.")
	}

	// Auto-resolve sweep for stale active incidents
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.AutoResolve.Enabled {
		autoResolver := autoresolve.NewService(store, time.Duration(cfg.AutoResolve.CheckIntervalSeconds)*time.Second)
		go autoResolver.Start(rootCtx)
	}

	// Optional MQTT detection ingest
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient = mqtt.NewClient(cfg.MQTT)
		mqttClient.RegisterHandler(mqtt.NewDetectionHandler(incidentService))
		if err := mqttClient.Start(); err != nil {
			log.Warnf("Failed to start MQTT ingest: %v. Continuing without MQTT.", err)
			mqttClient = nil
		} else {
			defer mqttClient.Stop()
		}
	} else {
		log.Info("MQTT ingest is disabled in config.")
	}

	// --- Setup Router ---
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	if len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	// Cookie-Session für die Theme-Präferenz
	sessionStore := cookie.NewStore([]byte(cfg.Session.Secret))
	router.Use(sessions.Sessions(cfg.Session.CookieName, sessionStore))

	apiHandler := handlers.NewAPIHandler(cfg, cameraService, incidentService, settingsService, sseHub)
	apiHandler.RegisterRoutes(router.Group("/api"))

	// --- Start server ---
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		log.Infof("Starting server on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Auf Shutdown-Signal warten
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped.")
}
