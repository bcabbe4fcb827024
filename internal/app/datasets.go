package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/zappabad/pamsview/internal/config"
	"github.com/zappabad/pamsview/internal/dataset"
)

// LoadDatasets reads every configured dataset in parallel and builds the store.
// Any load failure aborts startup.
func LoadDatasets(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dataset.Store, error) {
	loaded := make([]*dataset.Dataset, len(cfg.Datasets))

	g, _ := errgroup.WithContext(ctx)
	for i, dc := range cfg.Datasets {
		g.Go(func() error {
			d, err := dataset.LoadFile(dc.Path, dataset.Options{
				ID:             dataset.ID(dc.ID),
				Name:           dc.Name,
				AgentsPerGroup: dc.AgentsPerGroup,
			})
			if err != nil {
				return fmt.Errorf("dataset %d: %w", dc.ID, err)
			}
			logger.Info("dataset loaded",
				"id", d.ID,
				"name", d.Name,
				"path", dc.Path,
				"ticks", d.Duration,
				"markets", d.Channels())
			loaded[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dataset.NewStore(dataset.ID(cfg.DefaultDataset), loaded...)
}
