package cmd

import (
	"fmt"
	"village-profile/database"
	"village-profile/fallback"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the built-in dataset into the configured store",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := database.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	seeder, ok := store.(database.Seeder)
	if !ok {
		return fmt.Errorf("store driver %q cannot be seeded", cfg.Store.Driver)
	}

	ds, err := fallback.Load()
	if err != nil {
		return err
	}
	if err := seeder.Seed(ctx, ds.Articles, ds.TourismSpots, ds.Businesses); err != nil {
		return err
	}

	logger.Info("Store seeded",
		zap.String("driver", cfg.Store.Driver),
		zap.Int("articles", len(ds.Articles)),
		zap.Int("tourism_spots", len(ds.TourismSpots)),
		zap.Int("businesses", len(ds.Businesses)))
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d articles, %d tourism spots, %d businesses\n",
		len(ds.Articles), len(ds.TourismSpots), len(ds.Businesses))
	return nil
}
