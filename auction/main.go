// auction/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	auctionapi "github.com/Ftotnem/auction-state/auction/api"
	"github.com/Ftotnem/auction-state/auction/service"
	"github.com/Ftotnem/auction-state/auction/store"
	"github.com/Ftotnem/auction-state/shared/api"
	"github.com/Ftotnem/auction-state/shared/config"
	mongodbu "github.com/Ftotnem/auction-state/shared/mongodb"
	redisu "github.com/Ftotnem/auction-state/shared/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Auction State Service failed: %v", err)
	}
}

// run wires and serves the service. Deferred cleanup runs before main exits non-zero on error.
func run() error {
	// --- 1. Load Configuration ---
	cfg, err := config.LoadAuctionServiceConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Printf("Configuration loaded for Auction State Service. Backend: %s", cfg.StorageBackend)

	// --- 2. Open the Document Store ---
	documentStore, err := openDocumentStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s document store: %w", cfg.StorageBackend, err)
	}
	defer func() {
		if err := documentStore.Close(); err != nil {
			log.Printf("ERROR: Failed to close document store: %v", err)
		}
		log.Println("Document store closed.")
	}()

	// --- 3. Ensure Initial Data Exists (players, default teams, session) ---
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = store.EnsureDefaults(seedCtx, documentStore, time.Now())
	seedCancel()
	if err != nil {
		return fmt.Errorf("failed to ensure default documents exist: %w", err)
	}

	// --- 4. Initialize Business Logic and API Handlers ---
	stateService := service.NewStateService(documentStore)
	auctionAPIHandlers := auctionapi.NewAuctionAPIHandlers(stateService)

	// --- 5. Setup HTTP Server and Register Routes ---
	baseServer := api.NewBaseServer(cfg.ListenAddr(), log.Default())
	auctionAPIHandlers.RegisterRoutes(baseServer.Router)

	// --- 6. Bind, then Start HTTP Server ---
	ln, err := baseServer.Listen()
	if err != nil {
		return err
	}
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- baseServer.Serve(ln)
	}()
	log.Printf("Server running on port %d", cfg.Port)

	// --- 7. Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case sig := <-stop:
		log.Printf("Received %s, shutting down server...", sig)
	case err := <-serverErr:
		if err != nil {
			return err
		}
		return fmt.Errorf("HTTP server stopped unexpectedly")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := baseServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server graceful shutdown failed: %w", err)
	}
	log.Println("Server gracefully stopped.")
	return nil
}

// openDocumentStore connects the backend selected by STORAGE_BACKEND.
func openDocumentStore(cfg *config.AuctionServiceConfig) (store.DocumentStore, error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		return store.NewFileStore(cfg.DataDir)
	case config.BackendSQLite:
		return store.NewSQLiteStore(cfg.SQLitePath)
	case config.BackendMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient, err := mongodbu.NewClient(ctx, cfg.MongoDBConnStr, cfg.MongoDBDatabase)
		if err != nil {
			return nil, err
		}
		return store.NewMongoStore(mongoClient, cfg.MongoDBDocumentsCollection), nil
	case config.BackendRedis:
		redisClient, err := redisu.NewRedisClient(cfg.RedisAddrs, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(redisClient), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
