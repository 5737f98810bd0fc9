package command

import (
	"context"
	"fmt"
	"io"

	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert reference data",
}

var seedGenresCmd = &cobra.Command{
	Use:   "genres",
	Short: "Insert the default genres, skipping slugs that already exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewGenreService(repository.NewGenreRepo(env.db))
		return seedGenres(cmd.Context(), cmd.OutOrStdout(), svc)
	},
}

func seedGenres(ctx context.Context, out io.Writer, svc service.GenreService) error {
	n, err := svc.SeedDefaults(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}
	if n == 0 {
		fmt.Fprintln(out, "Default genres already present.")
		return nil
	}
	fmt.Fprintf(out, "✓ Inserted %d genres\n", n)
	return nil
}

func init() {
	seedCmd.AddCommand(seedGenresCmd)
	rootCmd.AddCommand(seedCmd)
}
