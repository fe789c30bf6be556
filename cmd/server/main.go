// Command notes-server starts the notes HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/notes-keeper/internal/config"
	"github.com/and161185/notes-keeper/internal/crypto"
	"github.com/and161185/notes-keeper/internal/repository/filestore"
	grpcserver "github.com/and161185/notes-keeper/internal/server/grpc"
	httpserver "github.com/and161185/notes-keeper/internal/server/http"
	"github.com/and161185/notes-keeper/internal/service"
	"github.com/and161185/notes-keeper/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, opens the collection files and serves HTTP until SIGINT/SIGTERM.
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(cfg.Dev)
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("dataDir", cfg.DataDir),
		zap.Bool("notesAuth", cfg.NotesRequireAuth),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := filestore.Open(ctx, cfg.DataDir, cfg.UsersFile, cfg.NotesFile)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}

	hasher, err := crypto.NewHasher(cfg.BcryptCost)
	if err != nil {
		logger.Fatal("password hasher", zap.Error(err))
	}
	tokens, err := token.NewManager(token.Config{Secret: []byte(cfg.SecretKey), TTL: cfg.TokenTTL})
	if err != nil {
		logger.Fatal("token manager", zap.Error(err))
	}

	// Services
	authSvc := service.NewAuthService(filestore.NewUserRepo(db), hasher, tokens)
	noteSvc := service.NewNoteService(filestore.NewNoteRepo(db))

	api := httpserver.New(authSvc, noteSvc, tokens, logger, httpserver.Options{NotesRequireAuth: cfg.NotesRequireAuth})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	var health *grpcserver.Health
	if cfg.HealthAddr != "" {
		lis, err := net.Listen("tcp", cfg.HealthAddr)
		if err != nil {
			logger.Fatal("listen health", zap.Error(err))
		}
		health = grpcserver.NewHealth(logger, cfg.Dev)
		go func() { errCh <- health.Serve(lis) }()
	}

	lis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
	go func() {
		logger.Info("listening", zap.String("addr", lis.Addr().String()))
		if err := srv.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	if health != nil {
		health.SetServing(true)
	}

	// Wait for stop
	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if health != nil {
		health.Shutdown(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown", zap.Error(err))
		_ = srv.Close()
	}
	logger.Info("shutdown complete")
}

func newLogger(dev bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return l
}
