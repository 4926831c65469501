package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osa911/formintake/internal/config"
	"github.com/osa911/formintake/internal/logging"
)

var (
	cfg    *config.Config
	logger *logging.Logger
)

// initRuntime loads configuration and installs the process logger
func initRuntime(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.InitLogger(cfg.LogConfig()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logging.GetGlobalLogger()
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "formintake",
	Short: "Form intake API - help and contact submissions",
	Long: `formintake accepts help and contact form submissions, verifies the
reCAPTCHA token and stores them in MongoDB, PostgreSQL or Firestore.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	RunE:              runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	err := rootCmd.Execute()
	if logger != nil {
		if err != nil {
			logger.Error("Command execution failed: %v", err)
		}
		logger.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
