package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intellialert/internal/config"
	Iservices "intellialert/internal/domain/interfaces/services"
	"intellialert/internal/infra/handlers"
	"intellialert/internal/infra/logger"
	"intellialert/internal/infra/provider"
	"intellialert/internal/infra/realtime"
	"intellialert/internal/infra/routes"
	"intellialert/internal/infra/services"
	"intellialert/internal/middleware"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	ctx := context.Background()
	log := logger.NewLogger(ctx, cfg.LogLevel, cfg.LogJSON)

	registry := realtime.NewRegistry(log)

	callProvider := provider.NewTwilioCallProvider(log, cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	var completionService Iservices.ICompletionService = services.NewCompletionService(log, cfg.CompletionAPIKey, cfg.CompletionBaseURL, cfg.CompletionModel)
	var callService Iservices.ICallService = services.NewCallService(log,
		services.CallSettings{From: cfg.TwilioPhoneNumber, To: cfg.CallToNumber, BaseURL: cfg.BaseURL},
		callProvider,
		completionService,
		registry,
	)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	routes := routes.NewRoutes(
		router,
		handlers.NewCallHandlers(log, callService),
		handlers.NewProfileHandlers(log),
		handlers.NewWebsocketHandlers(log, registry),
	)

	routes.Init()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: otelhttp.NewHandler(middleware.CORSMiddleware(cfg.AllowedOrigins)(router), "intellialert"),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(fmt.Sprintf("Error running HTTP server: %s", err))
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown.
	registry.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
