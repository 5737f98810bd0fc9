package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Novel stats cache maintenance",
}

var statsRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Recompute the stats row of every novel",
	Long: `Recompute chapter count, rating average and rating count for every novel
from the chapters and ratings tables. Safe to run while the API is serving.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db := env.db
		svc := service.NewStatsService(
			repository.NewStatsRepository(db),
			repository.NewNovelRepo(db),
			repository.NewChapterRepo(db),
			repository.NewRatingRepository(db),
		)
		return rebuildStats(cmd.Context(), cmd.OutOrStdout(), svc)
	},
}

func rebuildStats(ctx context.Context, out io.Writer, svc service.StatsService) error {
	start := time.Now()
	n, err := svc.RebuildAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to rebuild stats: %w", err)
	}
	zap.L().Info("stats rebuilt", zap.Int("novels", n), zap.Duration("took", time.Since(start)))
	fmt.Fprintf(out, "✓ Rebuilt stats for %d novels\n", n)
	return nil
}

func init() {
	statsCmd.AddCommand(statsRebuildCmd)
	rootCmd.AddCommand(statsCmd)
}
