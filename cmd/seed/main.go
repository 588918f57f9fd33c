// Command seed loads practice areas and lawyers from a YAML file into the
// configured database. Running it twice is harmless.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lawfirm/internal/config"
	"lawfirm/internal/database"
	"lawfirm/pkg/logger"
)

var seedFile string

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed practice areas and lawyers",
	Long: `Reads practice areas and lawyers from a YAML file and creates the ones
that are missing. Practice areas are matched by name, lawyers by email.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSeed,
}

func init() {
	rootCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "path to the YAML seed file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	file, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()

	f, err := loadFixture(file)
	if err != nil {
		return err
	}

	if err := database.Init(cfg.Database, logger.Component(log, "db")); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer database.Close()

	sum, err := seed(cmd.Context(), database.GetDB(), f, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "practice areas: %d created, %d already present\n", sum.AreasCreated, sum.AreasSkipped)
	fmt.Fprintf(cmd.OutOrStdout(), "lawyers:        %d created, %d already present\n", sum.LawyersCreated, sum.LawyersSkipped)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}
