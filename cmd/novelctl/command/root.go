// Package command implements novelctl, the operator CLI for the novelhub
// database: schema migration, reference data seeding, stats maintenance and
// account promotion.
package command

import (
	"fmt"
	"os"

	"novelhub/database"
	"novelhub/internal/config"
	"novelhub/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env is filled by the root PersistentPreRunE before any subcommand runs.
var env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

var rootCmd = &cobra.Command{
	Use:   "novelctl",
	Short: "novelctl - novelhub maintenance commands",
	Long: `novelctl runs maintenance tasks against the novelhub database.
It reads the same environment (or .env file) as the API server:
- migrate the schema
- seed the default genres
- rebuild the novel stats cache
- promote a user to admin

Use "novelctl [command] --help" to see the flags of each command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		lg, err := logger.New(cfg)
		if err != nil {
			return err
		}
		db, err := database.Connect(cfg, lg)
		if err != nil {
			return err
		}
		env.cfg, env.log, env.db = cfg, lg, db
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if env.db != nil {
			database.Close(env.db)
		}
		if env.log != nil {
			_ = env.log.Sync()
		}
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
