// Package wire provides dependency injection for the LABRES application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	cliadapter "github.com/example/labres/internal/adapters/cli"
	"github.com/example/labres/internal/adapters/sqlite"
	"github.com/example/labres/internal/app"
	"github.com/example/labres/internal/config"
	"github.com/example/labres/internal/db"
	"github.com/example/labres/internal/logging"
	"github.com/example/labres/internal/ports/primary"
)

var (
	reservationService  primary.ReservationService
	labService          primary.LabService
	depreciationService primary.DepreciationService
	logService          primary.LogService
	once                sync.Once
)

// ReservationService returns the singleton ReservationService instance.
func ReservationService() primary.ReservationService {
	once.Do(initServices)
	return reservationService
}

// LabService returns the singleton LabService instance.
func LabService() primary.LabService {
	once.Do(initServices)
	return labService
}

// DepreciationService returns the singleton DepreciationService instance.
func DepreciationService() primary.DepreciationService {
	once.Do(initServices)
	return depreciationService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

// Use builds the services on an already opened database instead of the configured one.
// It must be called before any service accessor; later calls have no effect.
func Use(cfg *config.Config, database *sql.DB, logger log.FieldLogger) {
	once.Do(func() {
		if err := build(cfg, database, logger); err != nil {
			log.Fatalf("failed to initialize services: %v", err)
		}
	})
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}

	path := cfg.DBPath
	if path == "" {
		path, err = db.DefaultPath()
		if err != nil {
			log.Fatalf("failed to get database path: %v", err)
		}
	}

	database, err := db.Open(path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := build(cfg, database, logger); err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}
}

func build(cfg *config.Config, database *sql.DB, logger log.FieldLogger) error {
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	transactor := sqlite.NewTransactor(database)
	reservationRepo := sqlite.NewReservationRepository(database)
	labRepo := sqlite.NewLabRepository(database)
	assetRepo := sqlite.NewAssetRepository(database)
	depreciationRepo := sqlite.NewDepreciationRepository(database)
	logRepo := sqlite.NewReservationLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(logRepo)

	// Create services (primary ports implementation)
	reservationService = app.NewReservationService(transactor, reservationRepo, labRepo, logWriter, policy, logger)
	labService = app.NewLabService(transactor, labRepo, logWriter, logger)
	depreciationService = app.NewDepreciationService(transactor, assetRepo, labRepo, depreciationRepo, logWriter, logger)
	logService = app.NewLogService(logRepo)
	return nil
}

// ReservationAdapter returns a new ReservationAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ReservationAdapter() *cliadapter.ReservationAdapter {
	return ReservationAdapterWithOutput(os.Stdout)
}

// ReservationAdapterWithOutput returns a new ReservationAdapter writing to the given output.
func ReservationAdapterWithOutput(out io.Writer) *cliadapter.ReservationAdapter {
	return cliadapter.NewReservationAdapter(ReservationService(), out)
}

// LabAdapter returns a new LabAdapter writing to stdout.
func LabAdapter() *cliadapter.LabAdapter {
	return LabAdapterWithOutput(os.Stdout)
}

// LabAdapterWithOutput returns a new LabAdapter writing to the given output.
func LabAdapterWithOutput(out io.Writer) *cliadapter.LabAdapter {
	return cliadapter.NewLabAdapter(LabService(), out)
}

// AssetAdapter returns a new AssetAdapter writing to stdout.
func AssetAdapter() *cliadapter.AssetAdapter {
	return AssetAdapterWithOutput(os.Stdout)
}

// AssetAdapterWithOutput returns a new AssetAdapter writing to the given output.
func AssetAdapterWithOutput(out io.Writer) *cliadapter.AssetAdapter {
	return cliadapter.NewAssetAdapter(DepreciationService(), out)
}

// LogAdapter returns a new LogAdapter writing to stdout.
func LogAdapter() *cliadapter.LogAdapter {
	return LogAdapterWithOutput(os.Stdout)
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) *cliadapter.LogAdapter {
	return cliadapter.NewLogAdapter(LogService(), out)
}
