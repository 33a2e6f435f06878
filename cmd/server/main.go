// Package main - точка входа в приложение.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VechkanovVV/bugtrack/internal/api/handlers"
	"github.com/VechkanovVV/bugtrack/internal/api/router"
	"github.com/VechkanovVV/bugtrack/internal/auth"
	"github.com/VechkanovVV/bugtrack/internal/config"
	"github.com/VechkanovVV/bugtrack/internal/infra/postgres"
	"github.com/VechkanovVV/bugtrack/internal/service"
	postgresRepo "github.com/VechkanovVV/bugtrack/internal/storage/postgres"
)

func main() {
	ctx := context.Background()

	dbCfg := config.LoadDB()
	log.Printf("starting server with DB config: host=%s port=%d dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.Name, dbCfg.SSLmode)

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		log.Fatalf("failed to create DB pool: %v", err)
	}
	log.Println("database connection pool created successfully")

	userRepo := postgresRepo.NewUserRepository(pool)
	projectRepo := postgresRepo.NewProjectRepository(pool)
	bugRepo := postgresRepo.NewBugRepository(pool)
	blobStore := postgresRepo.NewBlobStore(pool)

	engineCfg := config.LoadEngine()

	userService := service.NewUserService(userRepo)
	projectService := service.NewProjectService(projectRepo)
	bugService := service.NewBugService(bugRepo, projectRepo, userRepo, blobStore, engineCfg.CASRetries)

	limiter := auth.NewLoginLimiter(engineCfg.LoginRPS, engineCfg.LoginBurst)

	userHandler := handlers.NewUserHandler(userService, limiter)
	projectHandler := handlers.NewProjectHandler(projectService)
	bugHandler := handlers.NewBugHandler(bugService)
	statsHandler := handlers.NewStatsHandler(bugService)

	handler := router.NewRouter(userHandler, projectHandler, bugHandler, statsHandler, userRepo)

	serverCfg := config.LoadServer()
	srv := &http.Server{
		Addr:         serverCfg.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("starting HTTP server on %s", serverCfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	<-quit
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		cancel()
		pool.Close()
		log.Fatalf("server forced to shutdown: %v", err)
	}

	cancel()
	pool.Close()
	log.Println("server exited gracefully")
}
