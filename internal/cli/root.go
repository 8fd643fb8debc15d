// Package cli implements the command-line interface for cubetrainer.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubetrainer/internal/config"
)

const version = "0.2.0"

var (
	// Global flags
	dbPath  string
	verbose bool

	cfg    config.Config
	logger = logrus.New()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubetrainer",
	Short: "Rubik's Cube algorithm trainer",
	Long: `cubetrainer - practise Rubik's Cube algorithms in the terminal.

Each drill scrambles a virtual cube with the inverse of an algorithm and checks
every move you make against it, by keyboard or with a GoCube smart cube.
Attempts are timed, rated with stars and stored for later review.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubetrainer/cubetrainer.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// setup loads the environment configuration and configures logging. Flags
// win over the environment.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(cfg.Level())
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	return nil
}

// getDBPath returns the database path from flag, environment or "" for the
// default.
func getDBPath() string {
	return dbPath
}
