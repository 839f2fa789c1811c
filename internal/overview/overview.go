package overview

import (
	"context"
	"sort"
	"time"

	"stockroom/internal/cellindex"
	"stockroom/internal/registry"
	"stockroom/pkg/models"
)

const DefaultLowSpaceLimit = 5

// Aggregator derives cross-location statistics from the same cache the
// registry and cell index maintain; it never mutates anything.
type Aggregator struct {
	registry      *registry.Registry
	cells         *cellindex.Index
	lowSpaceLimit int
}

func NewAggregator(reg *registry.Registry, cells *cellindex.Index, lowSpaceLimit int) *Aggregator {
	if lowSpaceLimit <= 0 {
		lowSpaceLimit = DefaultLowSpaceLimit
	}
	return &Aggregator{registry: reg, cells: cells, lowSpaceLimit: lowSpaceLimit}
}

func (a *Aggregator) ComputeOverview(ctx context.Context) (*models.Overview, error) {
	if err := a.registry.RefreshAll(ctx); err != nil {
		return nil, err
	}

	locations := a.registry.Snapshot()

	overview := &models.Overview{
		ItemBreakdown: a.cells.Breakdown(),
		LastUpdated:   time.Now().UTC(),
	}

	lowSpace := make([]models.LowSpaceEntry, 0, len(locations))
	for _, loc := range locations {
		overview.TotalCapacity += loc.Capacity
		overview.TotalUtilized += loc.Utilized
		lowSpace = append(lowSpace, models.LowSpaceEntry{
			StorageID:   loc.ID,
			Name:        loc.Name,
			Utilization: loc.UtilizationPercent(),
		})
	}

	if overview.TotalCapacity > 0 {
		overview.UtilizationPercentage = int(float64(overview.TotalUtilized)/float64(overview.TotalCapacity)*100 + 0.5)
	}

	// Fullest first; ties break on id so the ranking is stable.
	sort.Slice(lowSpace, func(i, j int) bool {
		if lowSpace[i].Utilization != lowSpace[j].Utilization {
			return lowSpace[i].Utilization > lowSpace[j].Utilization
		}
		return lowSpace[i].StorageID < lowSpace[j].StorageID
	})
	if len(lowSpace) > a.lowSpaceLimit {
		lowSpace = lowSpace[:a.lowSpaceLimit]
	}
	overview.LowSpace = lowSpace

	return overview, nil
}

// UtilizationOf reports the rounded utilization percentage. An unknown
// location or one with zero capacity yields 0 rather than an error.
func (a *Aggregator) UtilizationOf(ctx context.Context, storageID int) int {
	loc, err := a.registry.Get(ctx, storageID)
	if err != nil {
		return 0
	}
	return loc.UtilizationPercent()
}
