// Package main initializes and starts the file CMS server, setting up
// configuration, logging, the data root, repositories, services, handlers,
// and optional TLS.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/filecms/internal/config"
	"github.com/atinyakov/filecms/internal/db"
	"github.com/atinyakov/filecms/internal/logger"
	"github.com/atinyakov/filecms/internal/render"
	"github.com/atinyakov/filecms/internal/repository"
	"github.com/atinyakov/filecms/internal/server/handler/http"
	"github.com/atinyakov/filecms/internal/service"
	"github.com/atinyakov/filecms/internal/session"
	"github.com/atinyakov/filecms/internal/view"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line, file and environment configuration.
	options, err := config.Parse()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	lg := logger.New()
	defer func() { _ = lg.Log.Sync() }()
	if err := lg.Init(options.LogLevel); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	zapLogger := lg.Log

	// Make sure the data root exists.
	if err := db.InitDataRoot(options.DocumentsDir(), options.MediaDir(), options.CredentialsPath()); err != nil {
		zapLogger.Fatal("cannot init data root", zap.Error(err))
	}

	// Initialize the flat-file repositories.
	documentRepo := repository.NewFileDocumentRepository(options.DocumentsDir())
	mediaRepo := repository.NewFileMediaRepository(options.MediaDir())
	credentialRepo := repository.NewFileCredentialRepository(options.CredentialsPath(), options.BcryptCost)

	// Initialize business-logic services.
	documentService := service.NewDocumentService(documentRepo, render.New())
	mediaService := service.NewMediaService(mediaRepo)
	authService := service.NewAuthService(credentialRepo)

	views, err := view.New()
	if err != nil {
		zapLogger.Fatal("cannot parse templates", zap.Error(err))
	}
	pages := &http.Pages{View: views, Logger: zapLogger}

	// Create HTTP handlers.
	documentHandler := &http.DocumentHandler{Documents: documentService, Media: mediaService, Pages: pages}
	mediaHandler := &http.MediaHandler{Media: mediaService, Documents: documentService, Pages: pages}
	userHandler := &http.UserHandler{Auth: authService, Pages: pages}

	store := session.NewCookieStore([]byte(options.SessionSecret), options.TLSEnabled())

	// Build the router with middleware and routes.
	router := http.NewRouter(documentHandler, mediaHandler, userHandler, store, zapLogger, options.MaxUploadSize)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting server",
			zap.String("addr", options.Port),
			zap.String("root", options.DataRoot()),
			zap.Bool("tls", options.TLSEnabled()),
		)
		if options.TLSEnabled() {
			errCh <- server.ListenAndServeTLS(options.CertFile, options.KeyFile)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
