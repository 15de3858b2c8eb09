package report

import (
	"context"
	"io"
	"sync"
	"time"

	"indy-builder/feature/catalog"
	"indy-builder/feature/costing"
	"indy-builder/feature/export"

	"go.uber.org/zap"
)

// Refresher computes blueprint costs, e.g. *costing.Engine.
type Refresher interface {
	Refresh(ctx context.Context, in costing.Inputs, now time.Time) ([]costing.BlueprintCost, error)
}

// Snapshot is the last refresh result.
type Snapshot struct {
	RefreshedAt time.Time               `json:"refreshed_at"`
	Costs       []costing.BlueprintCost `json:"costs"`
}

// Service keeps the latest cost results for the report views.
type Service struct {
	engine    Refresher
	inputs    costing.Inputs
	catalog   *catalog.Catalog
	assembler *export.Assembler
	logger    *zap.Logger
	now       func() time.Time

	mu   sync.Mutex
	last *Snapshot
}

// NewService creates a new report service.
func NewService(engine Refresher, inputs costing.Inputs, cat *catalog.Catalog, assembler *export.Assembler, logger *zap.Logger) *Service {
	return &Service{
		engine:    engine,
		inputs:    inputs,
		catalog:   cat,
		assembler: assembler,
		logger:    logger,
		now:       time.Now,
	}
}

// Refresh recomputes the costs and replaces the kept snapshot.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

// Costs returns the kept snapshot, refreshing first when there is none.
func (s *Service) Costs(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last != nil {
		return s.last, nil
	}
	return s.refreshLocked(ctx)
}

// WriteCSV writes the hub report for the current snapshot.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	snap, err := s.Costs(ctx)
	if err != nil {
		return err
	}
	rows := s.assembler.Rows(ctx, snap.Costs)
	return export.WriteCSV(w, s.catalog.Hubs(), rows)
}

func (s *Service) refreshLocked(ctx context.Context) (*Snapshot, error) {
	now := s.now()
	costs, err := s.engine.Refresh(ctx, s.inputs, now)
	if err != nil {
		return nil, err
	}
	s.last = &Snapshot{RefreshedAt: now.UTC(), Costs: costs}
	s.logger.Info("Costs refreshed", zap.Int("blueprints", len(costs)))
	return s.last, nil
}
