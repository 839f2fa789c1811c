package container

import (
	"database/sql"
	"os"
	"time"

	"stockroom/internal/allocation"
	"stockroom/internal/allocationlog"
	"stockroom/internal/batch"
	"stockroom/internal/boundary"
	postgresstore "stockroom/internal/boundary/postgres"
	"stockroom/internal/cellindex"
	"stockroom/internal/materials"
	"stockroom/internal/notify"
	"stockroom/internal/overview"
	"stockroom/internal/registry"
	"stockroom/internal/repository"

	"go.uber.org/zap"
)

type Container struct {
	Repository       *repository.Repository
	Store            boundary.Store
	Hub              *notify.Hub
	CellIndex        *cellindex.Index
	Registry         *registry.Registry
	Audit            *allocationlog.Recorder
	Engine           *allocation.Engine
	Aggregator       *overview.Aggregator
	Batch            *batch.Coordinator
	Materials        *materials.Service
	RegistryHandler  *registry.Handler
	AllocHandler     *allocation.Handler
	OverviewHandler  *overview.Handler
	BatchHandler     *batch.Handler
	MaterialsHandler *materials.Handler
}

func NewAppContainer(db *sql.DB, log *zap.Logger) *Container {
	repo := repository.NewRepository(db)
	store := boundary.Timed(postgresstore.NewStore(repo), boundaryTimeout())

	hub := notify.NewHub()
	cells := cellindex.NewIndex(store, hub, log)
	reg := registry.NewRegistry(store, cells, hub, log)
	audit := allocationlog.NewRecorder(store, log)

	moves := newMoveStore(log)
	engine := allocation.NewEngine(reg, cells, moves, audit, log)
	aggregator := overview.NewAggregator(reg, cells, overview.DefaultLowSpaceLimit)
	batchCoordinator := batch.NewCoordinator(reg, log)
	materialsService := materials.NewService(store, log)

	return &Container{
		Repository:       repo,
		Store:            store,
		Hub:              hub,
		CellIndex:        cells,
		Registry:         reg,
		Audit:            audit,
		Engine:           engine,
		Aggregator:       aggregator,
		Batch:            batchCoordinator,
		Materials:        materialsService,
		RegistryHandler:  registry.NewHandler(reg),
		AllocHandler:     allocation.NewHandler(engine, audit),
		OverviewHandler:  overview.NewHandler(aggregator),
		BatchHandler:     batch.NewHandler(batchCoordinator),
		MaterialsHandler: materials.NewHandler(materialsService),
	}
}

// newMoveStore picks Redis when REDIS_ADDR is set so replicas share move
// state; otherwise moves are tracked in process.
func newMoveStore(log *zap.Logger) allocation.MoveStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return allocation.NewMemoryMoveStore(time.Hour)
	}

	store, err := allocation.NewRedisMoveStore(addr, time.Hour)
	if err != nil {
		log.Warn("redis unavailable, falling back to in-memory move store", zap.Error(err))
		return allocation.NewMemoryMoveStore(time.Hour)
	}
	return store
}

func boundaryTimeout() time.Duration {
	raw := os.Getenv("BOUNDARY_TIMEOUT")
	if raw == "" {
		return boundary.DefaultTimeout
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return boundary.DefaultTimeout
	}
	return timeout
}
