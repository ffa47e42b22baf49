package main

import (
	"DiningAPI/internal/auth"
	"DiningAPI/internal/common"
	"DiningAPI/internal/databases"
	"DiningAPI/internal/env"
	"DiningAPI/internal/hours"
	"DiningAPI/internal/logger"
	"DiningAPI/internal/scheduler"
	"DiningAPI/internal/v0/status"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gin-gonic/gin"
)

func main() {
	envErr := godotenv.Load()
	logger.Init(env.GetEnv(env.EnvLogLevel, "info"), env.GetEnv(env.EnvEnvironment, "development"))
	log := logger.Log
	if envErr != nil {
		log.Info("No .env file found, using system environment variables")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Campus time zone, every weekday and time-of-day is read in it
	loc := time.Local
	if name := env.GetEnv(env.EnvTimezone, ""); name != "" {
		var err error
		if loc, err = time.LoadLocation(name); err != nil {
			log.WithError(err).Fatalf("Invalid %s", env.EnvTimezone)
		}
	}

	// Schedule source and store
	source, closeSource, err := openScheduleSource(env.GetEnv(env.EnvScheduleSource, "embedded"))
	if err != nil {
		log.WithError(err).Fatal("Failed to open the schedule source")
	}
	store, err := hours.NewStore(ctx, source)
	if err != nil {
		closeSource()
		log.WithError(err).Fatal("Failed to load the schedule")
	}
	defer closeSource()
	log.WithField("source", store.Source().Name()).Info("Schedule loaded")

	opts := []hours.Option{hours.WithLocation(loc)}
	if env.GetBool(env.EnvEnforceStartDate, false) {
		opts = append(opts, hours.WithStartDateEnforcement())
	}
	engine := hours.NewEngine(store, opts...)

	// Admin access and rate limiting
	allowList, err := auth.NewAllowList(env.GetStrings(env.EnvAdminAllowedIPs))
	if err != nil {
		log.WithError(err).Fatalf("Invalid %s", env.EnvAdminAllowedIPs)
	}
	adminHash := env.GetEnv(env.EnvAdminTokenHash, "")
	if adminHash == "" {
		log.Warnf("%s is not set, admin routes are disabled", env.EnvAdminTokenHash)
	}
	rateLimiter := auth.NewRateLimiter(env.GetInt(env.EnvRateLimitRPM, 120))
	rateLimiter.Start(ctx)
	authMiddleware := auth.NewMiddleware(auth.NewTokenChecker(adminHash), allowList, rateLimiter, log)

	// Scheduled reloads
	reloadScheduler := scheduler.NewReloadScheduler(store, engine, log, env.GetEnv(env.EnvScheduleReloadCron, ""))
	if err := reloadScheduler.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start the reload scheduler")
	}

	// Handlers
	statusHandler := status.NewHandler(engine, store, log)

	gin.SetMode(env.GetEnv(env.EnvGinMode, gin.ReleaseMode))
	router := gin.New()
	router.Use(gin.Recovery(), logger.Gin())

	// Global routes
	global := router.Group("/api")
	common.RegisterRoutes(global, store)

	// v0 API routes
	v0Group := router.Group("/api/v0")
	{
		status.RegisterRoutes(v0Group, statusHandler, authMiddleware)
	}

	server := &http.Server{
		Addr:              ":" + env.GetEnv(env.EnvPort, "9237"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("Shutting down...")
		cancel()
		reloadScheduler.Stop()
		rateLimiter.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	log.WithField("addr", server.Addr).Info("Listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("Server failed")
	}
}

// openScheduleSource builds the configured schedule source. The returned
// func releases whatever the source holds open.
func openScheduleSource(kind string) (hours.Source, func(), error) {
	switch kind {
	case "embedded", "":
		return hours.EmbeddedSource{}, func() {}, nil
	case "file":
		path := env.GetEnv(env.EnvScheduleFile, "")
		if path == "" {
			return nil, nil, fmt.Errorf("%s=file requires %s", env.EnvScheduleSource, env.EnvScheduleFile)
		}
		return hours.FileSource{Path: path}, func() {}, nil
	case "sqlite":
		path := env.GetEnv(env.EnvScheduleDB, "./internal/databases/hours.db")
		db, err := sql.Open("sqlite3", path)
		if err != nil {
			return nil, nil, err
		}
		if err := databases.Migrate(db, "hours"); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate %s: %w", path, err)
		}
		return hours.NewSQLiteSource(db, path), func() { db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown %s %q, expected embedded, file or sqlite", env.EnvScheduleSource, kind)
}

/*
Dining hours service. Open, closed and limited status for campus dining halls.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
