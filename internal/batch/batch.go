package batch

import (
	"context"

	"stockroom/internal/registry"
	"stockroom/pkg/models"

	"go.uber.org/zap"
)

// Coordinator applies the single-location registry operations across a list,
// best-effort. Each element succeeds or fails on its own; one bad element
// never aborts its siblings, and the call itself only errors when the inputs
// are unusable as a whole.
type Coordinator struct {
	registry *registry.Registry
	log      *zap.Logger
}

func NewCoordinator(reg *registry.Registry, log *zap.Logger) *Coordinator {
	return &Coordinator{registry: reg, log: log}
}

func (c *Coordinator) CreateMany(ctx context.Context, locations []models.Location) *models.BatchResult {
	result := &models.BatchResult{}
	for _, loc := range locations {
		created, err := c.registry.Create(ctx, loc)
		id := 0
		if created != nil {
			id = created.ID
		}
		result.Append(id, err)
	}

	c.logRollup("create", result)
	return result
}

type UpdateItem struct {
	ID    int                  `json:"id"`
	Patch models.LocationPatch `json:"patch"`
}

func (c *Coordinator) UpdateMany(ctx context.Context, items []UpdateItem) *models.BatchResult {
	result := &models.BatchResult{}
	for _, item := range items {
		_, err := c.registry.Update(ctx, item.ID, item.Patch)
		result.Append(item.ID, err)
	}

	c.logRollup("update", result)
	return result
}

func (c *Coordinator) DeleteMany(ctx context.Context, ids []int) *models.BatchResult {
	result := &models.BatchResult{}
	for _, id := range ids {
		result.Append(id, c.registry.Delete(ctx, id))
	}

	c.logRollup("delete", result)
	return result
}

func (c *Coordinator) logRollup(op string, result *models.BatchResult) {
	if result.Failed > 0 {
		c.log.Warn("batch finished with per-item failures",
			zap.String("op", op),
			zap.Int("succeeded", result.Succeeded),
			zap.Int("failed", result.Failed))
	}
}
