package materials

import (
	"context"

	"stockroom/internal/boundary"
	"stockroom/pkg/models"

	"go.uber.org/zap"
)

// Service is the materials-in-storage read model plus the CSV import/export
// gateway in front of the persistence boundary.
type Service struct {
	store boundary.Store
	log   *zap.Logger
}

func NewService(store boundary.Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) List(ctx context.Context, p models.Pagination, f models.MaterialFilters) (*models.MaterialPage, error) {
	return s.store.ListMaterials(ctx, p, f)
}
