/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the timesheet server. Handles configuration,
  dependency injection, and graceful shutdown.

CONFIGURATION:
  Flags, each with an environment fallback (flag wins when both are set):
    -addr    / TIMESHEET_ADDR      Listen address (default :8080)
    -db      / TIMESHEET_DB        SQLite database path (default timesheet.db)
                                   Use ":memory:" for an in-memory database
    -scheme  / TIMESHEET_IDENTITY_SCHEME
                                   Login identity scheme: email_phone or
                                   lastname_phone (default email_phone)

  The database path is never hard-coded; deployments supply it through the
  environment.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nickharris808/tribalhours/api"
	"github.com/nickharris808/tribalhours/store/sqlite"
	"github.com/nickharris808/tribalhours/timesheet"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Flags with environment fallbacks
	addr := flag.String("addr", envOr("TIMESHEET_ADDR", ":8080"), "HTTP listen address")
	dbPath := flag.String("db", envOr("TIMESHEET_DB", "timesheet.db"), "SQLite database path")
	schemeName := flag.String("scheme", envOr("TIMESHEET_IDENTITY_SCHEME", "email_phone"),
		"login identity scheme: email_phone or lastname_phone")
	flag.Parse()

	scheme, err := timesheet.ParseIdentityScheme(*schemeName)
	if err != nil {
		log.Fatalf("Invalid identity scheme %q", *schemeName)
	}

	// Initialize store (explicitly constructed and injected, never global)
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler and router
	handler := api.NewHandler(store, store, scheme)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Timesheet server listening on %s (scheme: %s)", *addr, scheme)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
