package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/santoku/sf/objectsync/services"
	"github.com/santoku/sf/pkg/config"
	"github.com/santoku/sf/pkg/objectsync/schema/postgres"
	sfrest "github.com/santoku/sf/pkg/salesforce/rest"
	"go.uber.org/zap"
)

func main() {
	// Objects to export come from the command line, default Account+Contact
	objects := []string{"Account", "Contact"}
	if len(os.Args) > 1 {
		objects = strings.Split(os.Args[1], ",")
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize database connection
	dbCfg := postgres.NewConfig()
	db, err := postgres.New(dbCfg, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	// Create record store and ensure the schema exists
	store := postgres.NewStore(db, logger)
	if err := store.Migrate(ctx); err != nil {
		logger.Error("Failed to migrate schema", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to migrate schema: %v\n", err)
		os.Exit(1)
	}

	// Each sync worker gets its own handler; the handler's session and
	// validation state is per-instance.
	newClient := func() sfrest.ObjectsClient {
		return sfrest.NewObjectsHandlerWithLogger(cfg, logger)
	}

	syncSvc := services.NewSyncService(newClient, store, logger)

	metrics, err := syncSvc.SyncAll(ctx, objects)
	if err != nil {
		logger.Error("Sync finished with errors", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Sync finished with errors: %v\n", err)
	}

	succeeded, failed := metrics.Totals()
	fmt.Printf("Sync Metrics:\n")
	fmt.Printf("  Objects: %d succeeded, %d failed\n", succeeded, failed)
	fmt.Printf("  Records saved: %d\n", metrics.RecordsSaved)

	if err != nil {
		os.Exit(1)
	}
}
